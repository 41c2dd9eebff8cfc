package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"chr1.txt": "H\nA\n",
		"chr2.txt": "H\nB\n",
	})
	out := filepath.Join(dir, "genome.out")
	files := []string{filepath.Join(dir, "chr1.txt"), filepath.Join(dir, "chr2.txt")}

	require.NoError(t, Merge(files, out))
	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "H\nA\nB\n", string(body))
	for _, f := range files {
		assert.NoFileExists(t, f)
	}
}

func TestMergeSortsInputs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"chr1.CHPREDICT.txt": "chrom\tstart\tend\trate\nchr1\t0\t10\t1e-8\nchr1\t10\t20\t2e-8\n",
		"chr2.CHPREDICT.txt": "chrom\tstart\tend\trate\nchr2\t0\t10\t3e-8\n",
		"chr3.CHPREDICT.txt": "chrom\tstart\tend\trate\n",
		"notes.txt":          "untouched\n",
	})
	files, err := Collect(dir, ".CHPREDICT.txt")
	require.NoError(t, err)
	require.Len(t, files, 3)

	reversed := []string{files[2], files[0], files[1]}
	out := filepath.Join(dir, "sample.PREDICT.txt")
	require.NoError(t, Merge(reversed, out))

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "chrom\tstart\tend\trate\nchr1\t0\t10\t1e-8\nchr1\t10\t20\t2e-8\nchr2\t0\t10\t3e-8\n", string(body))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))

	left, err := Collect(dir, ".CHPREDICT.txt")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestMergeFailureKeepsSources(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"chr1.txt": "H\nA\n"})
	files := []string{filepath.Join(dir, "chr1.txt"), filepath.Join(dir, "chr2.txt")}

	out := filepath.Join(dir, "genome.out")
	assert.Error(t, Merge(files, out))
	assert.FileExists(t, files[0])
	assert.NoFileExists(t, out)
}

func TestMergeRemoveFailureIsWarning(t *testing.T) {
	orig := remove
	remove = func(string) error { return errors.New("read-only file system") }
	t.Cleanup(func() { remove = orig })

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"chr1.txt": "H\nA\n",
		"chr2.txt": "H\nB\n",
	})
	out := filepath.Join(dir, "genome.out")
	files := []string{filepath.Join(dir, "chr1.txt"), filepath.Join(dir, "chr2.txt")}

	require.NoError(t, Merge(files, out))
	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "H\nA\nB\n", string(body))
	for _, f := range files {
		assert.FileExists(t, f)
	}
}

func TestMergeNothing(t *testing.T) {
	assert.Error(t, Merge(nil, filepath.Join(t.TempDir(), "genome.out")))
}

// Package merge stitches per-chromosome prediction files into one
// genome-wide file.
package merge

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
)

// remove deletes a merged source file.
var remove = os.Remove

// Collect lists the files in dir ending in suffix, sorted by name.
func Collect(dir, suffix string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*"+suffix))
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// Merge concatenates files, in lexicographic order, into output. The header
// line of the first file is kept and skipped in every other one. Once output
// is complete the source files are removed; a failed removal is only logged.
// If the merge fails the sources are left in place and the partial output
// is deleted.
func Merge(files []string, output string) error {
	if len(files) == 0 {
		return errors.New("no prediction files to merge")
	}
	files = slices.Clone(files)
	slices.Sort(files)

	out, err := os.Create(output)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", output)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for i, f := range files {
		if err := appendFile(w, f, i > 0); err != nil {
			slog.Warn("Keeping per-chromosome prediction files after failed merge", "output", output)
			out.Close()
			if rerr := os.Remove(output); rerr != nil {
				slog.Warn("Unable to remove partial genome-wide file", "output", output, "error", rerr)
			}
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "unable to write %s", output)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "unable to close %s", output)
	}

	for _, f := range files {
		if err := remove(f); err != nil {
			slog.Warn("Unable to remove per-chromosome prediction file", "file", f, "error", err)
		}
	}
	return nil
}

func appendFile(w io.Writer, path string, skipHeader bool) error {
	in, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "unable to open %s", path)
	}
	defer in.Close()

	r := bufio.NewReader(in)
	if skipHeader {
		if _, err := r.ReadString('\n'); err != nil && err != io.EOF {
			return errors.Wrapf(err, "unable to read %s", path)
		}
	}
	if _, err := io.Copy(w, r); err != nil {
		return errors.Wrapf(err, "unable to copy %s", path)
	}
	return nil
}

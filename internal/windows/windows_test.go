package windows

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinCounts(t *testing.T) {
	positions := []int64{1, 5, 2005, 2006}

	bins, err := Bins(positions, 1000)
	require.NoError(t, err)
	assert.Equal(t, []Bin{{1, 1001}, {1001, 2001}, {2001, 3001}}, bins)

	counts, err := BinCounts(positions, 1000)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 2}, counts)

	ranges, err := IndexRanges(positions, 1000)
	require.NoError(t, err)
	assert.Equal(t, []IndexRange{{0, 2}, {2, 2}, {2, 4}}, ranges)
	assert.Zero(t, ranges[1].Len())
}

func TestBinCountsSingleWindow(t *testing.T) {
	counts, err := BinCounts([]int64{1, 10, 500, 1000}, 1000)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, counts)
}

func TestBinCountsWindowEdges(t *testing.T) {
	// 1000 is the last base of the first window, 1001 the first of the second.
	counts, err := BinCounts([]int64{1000, 1001, 1001}, 1000)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, counts)
}

func TestBinCountsPartition(t *testing.T) {
	cases := []struct {
		positions  []int64
		windowSize int
	}{
		{[]int64{1}, 1},
		{[]int64{7, 7, 7}, 3},
		{[]int64{2, 3, 50, 51, 52, 999, 4000}, 10},
		{[]int64{100, 200, 300, 400}, 100000},
		{[]int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 2},
	}
	for _, c := range cases {
		counts, err := BinCounts(c.positions, c.windowSize)
		require.NoError(t, err)
		sum := 0
		for _, n := range counts {
			sum += n
		}
		assert.Equal(t, len(c.positions), sum)

		ranges, err := IndexRanges(c.positions, c.windowSize)
		require.NoError(t, err)
		require.Len(t, ranges, len(counts))
		assert.Equal(t, 0, ranges[0].Start)
		assert.Equal(t, len(c.positions), ranges[len(ranges)-1].End)
		for i, r := range ranges {
			assert.Equal(t, counts[i], r.Len())
			if i > 0 {
				assert.Equal(t, ranges[i-1].End, r.Start)
			}
		}
	}
}

func TestBinCountsInvalid(t *testing.T) {
	_, err := BinCounts(nil, 1000)
	assert.ErrorIs(t, err, ErrNoPositions)

	_, err = BinCounts([]int64{1, 2}, 0)
	assert.Error(t, err)

	_, err = BinCounts([]int64{0, 2}, 10)
	assert.Error(t, err)

	_, err = BinCounts([]int64{5, 2}, 10)
	assert.Error(t, err)
}

func TestResolvePadding(t *testing.T) {
	p, err := ResolvePadding(1000, []int64{1, 5, 2005, 2006, 2500})
	require.NoError(t, err)
	assert.Equal(t, Padding{WindowSize: 1000, MinSnps: 0, MeanSnps: 1, MaxSnps: 3, Bins: 3}, p)
}

func TestResolvePaddingTooDense(t *testing.T) {
	positions := make([]int64, MaxSnpsPerWindow+1)
	for i := range positions {
		positions[i] = int64(i + 1)
	}
	p, err := ResolvePadding(10000, positions)
	var density *DensityError
	require.ErrorAs(t, err, &density)
	assert.Equal(t, MaxSnpsPerWindow+1, density.MaxSnps)
	assert.Equal(t, Padding{MinSnps: MaxSnpsPerWindow + 1, MeanSnps: MaxSnpsPerWindow + 1, MaxSnps: MaxSnpsPerWindow + 1}, p)

	p, err = ResolvePadding(10000, positions[:MaxSnpsPerWindow])
	require.NoError(t, err)
	assert.Equal(t, MaxSnpsPerWindow, p.MaxSnps)
}

type segSites int

func (s segSites) MaxSegSites() int { return int(s) }

func TestMaxSegSites(t *testing.T) {
	assert.Equal(t, 40, MaxSegSites([]segSites{10, 40, 20}, 30))
	assert.Equal(t, 55, MaxSegSites([]segSites{10, 40, 20}, 55))
	assert.Equal(t, 7, MaxSegSites([]segSites{}, 7))

	// raising any one dataset never lowers the result
	prev := 0
	for v := 0; v < 100; v += 7 {
		got := MaxSegSites([]segSites{12, segSites(v), 30}, 25)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestParseCatalog(t *testing.T) {
	in := "chr1\t20\t50000\t3\t40\t120\t500\n\nchr2 20 75000 1 38 190\n"
	c, err := ParseCatalog(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, Record{Chrom: "chr1", Samples: 20, WindowSize: 50000, MinSnps: 3, MeanSnps: 40, MaxSnps: 120, Bins: 500}, c[0])
	assert.Equal(t, 0, c[1].Bins)
	assert.Equal(t, 190, c.MaxSnps())
	assert.Equal(t, 40, c.MaxMeanSnps())
	assert.Equal(t, 75000, c.MaxWindowSize())
	assert.Equal(t, []string{"chr1", "chr2"}, c.Chroms())
}

func TestParseCatalogMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"chr1 20 50000 3 40\n",
		"chr1 20 50000 3 forty 120\n",
		"chr1 20 0 3 40 120\n",
	} {
		_, err := ParseCatalog(strings.NewReader(in))
		assert.Error(t, err, in)
	}
}

func TestLoadCatalogMissing(t *testing.T) {
	_, err := LoadCatalog(t.TempDir() + "/windowSizes.txt")
	assert.Error(t, err)
}

package windows

import (
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Bin is the half-open genomic interval [Start, End).
type Bin struct {
	Start int64
	End   int64
}

// IndexRange is the slice [Start, End) of the position array falling in one bin.
type IndexRange struct {
	Start int
	End   int
}

func (r IndexRange) Len() int { return r.End - r.Start }

// Bins tiles [1, max(positions)+windowSize) with windows of width windowSize.
// Coordinates are 1-based, as in VCF.
func Bins(positions []int64, windowSize int) ([]Bin, error) {
	if err := checkPositions(positions, windowSize); err != nil {
		return nil, err
	}
	ws := int64(windowSize)
	n := (positions[len(positions)-1]-1)/ws + 1
	bins := make([]Bin, n)
	for i := range bins {
		start := 1 + int64(i)*ws
		bins[i] = Bin{Start: start, End: start + ws}
	}
	return bins, nil
}

// BinCounts returns the number of positions falling in each bin of Bins.
func BinCounts(positions []int64, windowSize int) ([]int, error) {
	bins, err := Bins(positions, windowSize)
	if err != nil {
		return nil, err
	}

	dividers := make([]float64, len(bins)+1)
	for i, b := range bins {
		dividers[i] = float64(b.Start)
	}
	dividers[len(bins)] = float64(bins[len(bins)-1].End)

	x := make([]float64, len(positions))
	for i, p := range positions {
		x[i] = float64(p)
	}

	hist := stat.Histogram(nil, dividers, x, nil)
	counts := make([]int, len(hist))
	for i, c := range hist {
		counts[i] = int(c)
	}
	return counts, nil
}

// IndexRanges returns, for each bin, the contiguous slice of positions it
// holds. The ranges partition [0, len(positions)) in order; an empty bin
// yields a zero-length range.
func IndexRanges(positions []int64, windowSize int) ([]IndexRange, error) {
	counts, err := BinCounts(positions, windowSize)
	if err != nil {
		return nil, err
	}
	ranges := make([]IndexRange, len(counts))
	st := 0
	for i, c := range counts {
		ranges[i] = IndexRange{Start: st, End: st + c}
		st += c
	}
	return ranges, nil
}

func checkPositions(positions []int64, windowSize int) error {
	if windowSize <= 0 {
		return errors.Errorf("window size must be a positive integer, got %d", windowSize)
	}
	if len(positions) == 0 {
		return ErrNoPositions
	}
	if positions[0] < 1 {
		return errors.Errorf("positions are 1-based, got %d", positions[0])
	}
	if !slices.IsSorted(positions) {
		return errors.New("positions are not sorted")
	}
	return nil
}

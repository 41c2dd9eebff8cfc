package windows

import (
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MaxSnpsPerWindow is the densest window the trained network was built for.
const MaxSnpsPerWindow = 1600

// Padding summarises the per-window SNP counts of one chromosome.
type Padding struct {
	WindowSize int
	MinSnps    int
	MeanSnps   int // floored
	MaxSnps    int
	Bins       int
}

// Summarize computes min, floored mean and max over per-bin SNP counts.
func Summarize(counts []int) Padding {
	if len(counts) == 0 {
		return Padding{}
	}
	x := make([]float64, len(counts))
	for i, c := range counts {
		x[i] = float64(c)
	}
	return Padding{
		MinSnps:  int(floats.Min(x)),
		MeanSnps: int(stat.Mean(x, nil)),
		MaxSnps:  int(floats.Max(x)),
		Bins:     len(counts),
	}
}

// ResolvePadding bins positions at windowSize and reports the SNP-per-window
// statistics. When the densest window exceeds MaxSnpsPerWindow it returns the
// statistics without WindowSize and Bins, together with a *DensityError.
func ResolvePadding(windowSize int, positions []int64) (Padding, error) {
	counts, err := BinCounts(positions, windowSize)
	if err != nil {
		return Padding{}, err
	}
	p := Summarize(counts)
	if p.MaxSnps > MaxSnpsPerWindow {
		return Padding{MinSnps: p.MinSnps, MeanSnps: p.MeanSnps, MaxSnps: p.MaxSnps},
			&DensityError{WindowSize: windowSize, MaxSnps: p.MaxSnps}
	}
	p.WindowSize = windowSize
	return p, nil
}

// SegSiteReporter is anything reporting the largest number of segregating
// sites it has seen, such as the metadata of a simulated dataset.
type SegSiteReporter interface {
	MaxSegSites() int
}

// MaxSegSites is the sequence length every window is padded to: the largest
// segregating-site count over all datasets and the observed maximum.
func MaxSegSites[T SegSiteReporter](infos []T, observedMax int) int {
	return lo.Reduce(infos, func(acc int, info T, _ int) int {
		return max(acc, info.MaxSegSites())
	}, observedMax)
}

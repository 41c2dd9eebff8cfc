// Package ploidy classifies a genotype matrix as haploid or diploid.
package ploidy

import (
	"github.com/pkg/errors"

	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/variants"
)

// Result is the outcome of a ploidy classification. Samples counts
// haplotypes: the number of genotype columns for haploid data, twice that
// for diploid data.
type Result struct {
	Haploid bool
	Samples int
}

func (r Result) String() string {
	if r.Haploid {
		return "haploid"
	}
	return "diploid"
}

// Detector decides the ploidy and sample count of a chromosome's genotypes.
type Detector interface {
	Detect(g *variants.Genotypes) (Result, error)
}

// FirstSample looks only at the second allele slot of the first sample and
// assumes every sample shares its ploidy. Mixed-ploidy data is misclassified.
type FirstSample struct{}

func (FirstSample) Detect(g *variants.Genotypes) (Result, error) {
	if g == nil || g.Variants == 0 || g.Samples == 0 {
		return Result{}, errors.New("cannot detect ploidy of an empty genotype matrix")
	}
	if g.Ploidy < 2 {
		return Result{Haploid: true, Samples: g.Samples}, nil
	}
	return Classify(g.Haplotype(0, 1), g.Samples), nil
}

// Classify treats hap as the derived haplotype slot of a representative
// sample. If every value is missing the data is haploid.
func Classify(hap []int8, samples int) Result {
	for _, a := range hap {
		if a != variants.Missing {
			return Result{Haploid: false, Samples: 2 * samples}
		}
	}
	return Result{Haploid: true, Samples: samples}
}

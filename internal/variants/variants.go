// Package variants reads and writes the per-chromosome variant stores
// produced by the convert command.
package variants

import (
	"github.com/pkg/errors"
	"github.com/sbinet/npyio/npz"
)

// Missing marks an absent allele in a genotype call.
const Missing int8 = -1

// Genotypes is a variants x samples x ploidy call matrix, stored variant-major.
type Genotypes struct {
	Variants int
	Samples  int
	Ploidy   int
	Calls    []int8
}

func NewGenotypes(variants, samples, ploidy int) *Genotypes {
	return &Genotypes{
		Variants: variants,
		Samples:  samples,
		Ploidy:   ploidy,
		Calls:    make([]int8, variants*samples*ploidy),
	}
}

func (g *Genotypes) index(v, s, p int) int {
	return (v*g.Samples+s)*g.Ploidy + p
}

func (g *Genotypes) At(v, s, p int) int8 { return g.Calls[g.index(v, s, p)] }

func (g *Genotypes) Set(v, s, p int, a int8) { g.Calls[g.index(v, s, p)] = a }

// Haplotype returns the allele in slot p of sample s for every variant.
func (g *Genotypes) Haplotype(s, p int) []int8 {
	hap := make([]int8, g.Variants)
	for v := range hap {
		hap[v] = g.At(v, s, p)
	}
	return hap
}

// Store is the content of one chromosome's .npz archive.
type Store struct {
	Positions []int64
	Genotypes *Genotypes
}

func (s *Store) Validate() error {
	if s.Genotypes == nil {
		return errors.New("missing genotypes")
	}
	g := s.Genotypes
	if g.Variants != len(s.Positions) {
		return errors.Errorf("%d positions but %d genotype rows", len(s.Positions), g.Variants)
	}
	if g.Samples <= 0 || g.Ploidy <= 0 {
		return errors.Errorf("invalid genotype shape (%d, %d, %d)", g.Variants, g.Samples, g.Ploidy)
	}
	if len(g.Calls) != g.Variants*g.Samples*g.Ploidy {
		return errors.Errorf("genotype shape (%d, %d, %d) does not match %d calls", g.Variants, g.Samples, g.Ploidy, len(g.Calls))
	}
	for i, p := range s.Positions {
		if p < 1 {
			return errors.Errorf("position %d at row %d is not 1-based", p, i)
		}
		if i > 0 && p < s.Positions[i-1] {
			return errors.Errorf("positions are not sorted at row %d", i)
		}
	}
	return nil
}

// Load reads a variant store from an .npz archive.
func Load(path string) (*Store, error) {
	in, err := npz.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open variant store %s", path)
	}
	defer in.Close()

	var pos []int64
	if err := in.Read("POS", &pos); err != nil {
		return nil, errors.Wrapf(err, "unable to read positions from %s", path)
	}
	var shape []int64
	if err := in.Read("GT_shape", &shape); err != nil {
		return nil, errors.Wrapf(err, "unable to read genotype shape from %s", path)
	}
	if len(shape) != 3 {
		return nil, errors.Errorf("%s: genotype shape has %d dimensions, expected 3", path, len(shape))
	}
	var calls []int8
	if err := in.Read("GT", &calls); err != nil {
		return nil, errors.Wrapf(err, "unable to read genotypes from %s", path)
	}

	s := &Store{
		Positions: pos,
		Genotypes: &Genotypes{
			Variants: int(shape[0]),
			Samples:  int(shape[1]),
			Ploidy:   int(shape[2]),
			Calls:    calls,
		},
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return s, nil
}

// Write stores s as an .npz archive at path.
func Write(path string, s *Store) error {
	if err := s.Validate(); err != nil {
		return err
	}
	out, err := npz.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}
	defer out.Close()

	g := s.Genotypes
	if err := out.Write("POS", s.Positions); err != nil {
		return errors.Wrapf(err, "unable to write to %s", path)
	}
	if err := out.Write("GT_shape", []int64{int64(g.Variants), int64(g.Samples), int64(g.Ploidy)}); err != nil {
		return errors.Wrapf(err, "unable to write to %s", path)
	}
	if err := out.Write("GT", g.Calls); err != nil {
		return errors.Wrapf(err, "unable to write to %s", path)
	}
	return out.Close()
}

package convert

import (
	"io"

	"github.com/brentp/vcfgo"
	"github.com/pkg/errors"
	"v.io/v23/glob"

	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/variants"
)

// ploidy of every stored call; haploid calls leave the second slot missing.
const storePloidy = 2

type chromBuilder struct {
	positions []int64
	calls     []int8
}

// splitResult holds the variant stores of one VCF, keyed by chromosome, in
// file order.
type splitResult struct {
	chroms  []string
	stores  map[string]*variants.Store
	samples int
	skipped int
}

func biallelicSNP(v *vcfgo.Variant) bool {
	if len(v.Reference) != 1 || len(v.Alternate) != 1 {
		return false
	}
	alt := v.Alternate[0]
	return len(alt) == 1 && alt != "." && alt != "*"
}

// readVCF keeps biallelic SNPs and groups them per chromosome. Contigs
// matching exclude are dropped; a nil exclude keeps everything. Records that
// are not biallelic SNPs are counted in skipped.
func readVCF(r io.Reader, exclude *glob.Glob) (*splitResult, error) {
	rdr, err := vcfgo.NewReader(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read VCF header")
	}
	res := &splitResult{stores: map[string]*variants.Store{}, samples: len(rdr.Header.SampleNames)}
	if res.samples == 0 {
		return nil, errors.New("header has no samples")
	}

	builders := map[string]*chromBuilder{}
	for {
		v := rdr.Read()
		if v == nil {
			break
		}
		if err := rdr.Error(); err != nil {
			return nil, errors.Wrapf(err, "line %d", v.LineNumber)
		}

		chrom := v.Chromosome
		if exclude != nil && exclude.Head().Match(chrom) {
			continue
		}
		if !biallelicSNP(v) {
			res.skipped++
			continue
		}
		if v.Pos < 1 {
			return nil, errors.Errorf("line %d: invalid position %d", v.LineNumber, v.Pos)
		}
		if len(v.Samples) != res.samples {
			return nil, errors.Errorf("line %d: expected %d samples, got %d", v.LineNumber, res.samples, len(v.Samples))
		}

		pos := int64(v.Pos)
		b, ok := builders[chrom]
		if !ok {
			b = &chromBuilder{}
			builders[chrom] = b
			res.chroms = append(res.chroms, chrom)
		}
		if n := len(b.positions); n > 0 && pos < b.positions[n-1] {
			return nil, errors.Errorf("line %d: %s:%d is out of order, the VCF must be sorted", v.LineNumber, chrom, pos)
		}
		for i, s := range v.Samples {
			if s == nil || len(s.GT) == 0 {
				return nil, errors.Errorf("line %d: sample %s has no genotype", v.LineNumber, rdr.Header.SampleNames[i])
			}
			alleles, err := toCalls(s.GT)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d sample %s", v.LineNumber, rdr.Header.SampleNames[i])
			}
			b.calls = append(b.calls, alleles[:]...)
		}
		b.positions = append(b.positions, pos)
	}
	if err := rdr.Error(); err != nil {
		return nil, err
	}

	for _, chrom := range res.chroms {
		b := builders[chrom]
		res.stores[chrom] = &variants.Store{
			Positions: b.positions,
			Genotypes: &variants.Genotypes{
				Variants: len(b.positions),
				Samples:  res.samples,
				Ploidy:   storePloidy,
				Calls:    b.calls,
			},
		}
	}
	return res, nil
}

// toCalls converts the allele indices of a biallelic call (-1 for missing)
// into the stored two slots. Haploid calls leave the second slot missing.
func toCalls(gt []int) ([storePloidy]int8, error) {
	alleles := [storePloidy]int8{variants.Missing, variants.Missing}
	if len(gt) == 0 || len(gt) > storePloidy {
		return alleles, errors.Errorf("unsupported genotype %v", gt)
	}
	for i, a := range gt {
		switch a {
		case 0, 1:
			alleles[i] = int8(a)
		case -1:
			alleles[i] = variants.Missing
		default:
			return alleles, errors.Errorf("unsupported genotype %v", gt)
		}
	}
	return alleles, nil
}

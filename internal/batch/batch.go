// Package batch assembles the parameters of the sequence batch generator and
// hands them to the inference program as an .npz of arrays plus a TOML
// manifest of scalars.
package batch

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sbinet/npyio/npz"

	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/variants"
	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/windows"
)

// Fixed encoding the network was trained with.
const (
	FrameWidth = 5
	AncVal     = -1
	DerVal     = 1
	PadVal     = 0
	PosPadVal  = 0
)

// Params mirrors the options of the batch generator. Arrays are written to
// the .npz named by Arrays; everything else goes in the manifest.
type Params struct {
	Info        string `toml:"info"`
	Chrom       string `toml:"chrom"`
	Win         int    `toml:"win"`
	BatchSize   int    `toml:"batchSize"`
	MaxLen      int    `toml:"maxLen"`
	FrameWidth  int    `toml:"frameWidth"`
	SortInds    bool   `toml:"sortInds"`
	Center      bool   `toml:"center"`
	AncVal      int    `toml:"ancVal"`
	PadVal      int    `toml:"padVal"`
	DerVal      int    `toml:"derVal"`
	RealLinePos bool   `toml:"realLinePos"`
	PosPadVal   int    `toml:"posPadVal"`
	Hap         bool   `toml:"hap"`
	Samples     int    `toml:"nSamps"`
	Arrays      string `toml:"arrays"`

	IDs []windows.IndexRange `toml:"-"`
	GT  *variants.Genotypes  `toml:"-"`
	Pos []int64              `toml:"-"`
}

// Build fills in the fixed options around the per-chromosome inputs.
func Build(info string, chrom string, pad windows.Padding, ids []windows.IndexRange, store *variants.Store, maxLen int, haploid bool, samples int) Params {
	return Params{
		Info:        info,
		Chrom:       chrom,
		Win:         pad.WindowSize,
		IDs:         ids,
		GT:          store.Genotypes,
		Pos:         store.Positions,
		BatchSize:   pad.Bins,
		MaxLen:      maxLen,
		FrameWidth:  FrameWidth,
		SortInds:    false,
		Center:      false,
		AncVal:      AncVal,
		PadVal:      PadVal,
		DerVal:      DerVal,
		RealLinePos: true,
		PosPadVal:   PosPadVal,
		Hap:         haploid,
		Samples:     samples,
	}
}

// Files returns the array and manifest paths Write uses for chrom in dir.
func Files(dir, chrom string) (arrays, manifest string) {
	base := filepath.Join(dir, chrom+".CHBATCH")
	return base + ".npz", base + ".toml"
}

// Write emits the arrays and the manifest and returns the manifest path.
func Write(dir string, p Params) (string, error) {
	if len(p.IDs) != p.BatchSize {
		return "", errors.Errorf("batch size %d does not match %d index ranges", p.BatchSize, len(p.IDs))
	}
	arrays, manifest := Files(dir, p.Chrom)
	if err := writeArrays(arrays, p); err != nil {
		return "", err
	}
	p.Arrays = filepath.Base(arrays)

	f, err := os.Create(manifest)
	if err != nil {
		return "", errors.Wrapf(err, "unable to create %s", manifest)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(p); err != nil {
		return "", errors.Wrapf(err, "unable to write %s", manifest)
	}
	return manifest, f.Close()
}

func writeArrays(path string, p Params) error {
	ids := make([]int64, 0, 2*len(p.IDs))
	for _, r := range p.IDs {
		ids = append(ids, int64(r.Start), int64(r.End))
	}

	out, err := npz.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}
	defer out.Close()

	arrays := []struct {
		name string
		v    interface{}
	}{
		{"IDs", ids},
		{"POS", p.Pos},
		{"GT", p.GT.Calls},
		{"GT_shape", []int64{int64(p.GT.Variants), int64(p.GT.Samples), int64(p.GT.Ploidy)}},
	}
	for _, a := range arrays {
		if err := out.Write(a.name, a.v); err != nil {
			return errors.Wrapf(err, "unable to write %s to %s", a.name, path)
		}
	}
	return out.Close()
}

// Remove deletes both hand-off files of chrom.
func Remove(dir, chrom string) error {
	arrays, manifest := Files(dir, chrom)
	var first error
	for _, f := range []string{arrays, manifest} {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) && first == nil {
			first = err
		}
	}
	return first
}

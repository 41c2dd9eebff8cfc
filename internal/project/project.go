// Package project resolves the on-disk layout of a ReLERNN project directory.
package project

import (
	"path/filepath"
	"strings"
)

// Layout holds every path the prediction step reads from or writes to.
type Layout struct {
	Dir        string
	TrainDir   string
	ValiDir    string
	TestDir    string
	NetworkDir string
	VCFDir     string
}

func New(dir string) Layout {
	return Layout{
		Dir:        dir,
		TrainDir:   filepath.Join(dir, "train"),
		ValiDir:    filepath.Join(dir, "vali"),
		TestDir:    filepath.Join(dir, "test"),
		NetworkDir: filepath.Join(dir, "networks"),
		VCFDir:     filepath.Join(dir, "splitVCFs"),
	}
}

func (l Layout) ModelFile() string   { return filepath.Join(l.NetworkDir, "model.json") }
func (l Layout) WeightsFile() string { return filepath.Join(l.NetworkDir, "weights.h5") }
func (l Layout) WindowsFile() string { return filepath.Join(l.NetworkDir, "windowSizes.txt") }

// DatasetInfoFiles returns the train, vali and test metadata pickles, in that order.
func (l Layout) DatasetInfoFiles() []string {
	return []string{
		filepath.Join(l.TrainDir, "info.p"),
		filepath.Join(l.ValiDir, "info.p"),
		filepath.Join(l.TestDir, "info.p"),
	}
}

// Stem strips the directory and the .vcf / .vcf.gz suffix from a VCF path.
func Stem(vcf string) string {
	bn := filepath.Base(vcf)
	for _, ext := range []string{".vcf.gz", ".vcf.bgz", ".vcf"} {
		if strings.HasSuffix(bn, ext) {
			return strings.TrimSuffix(bn, ext)
		}
	}
	return bn
}

// VariantStore is the per-chromosome store written by the convert command.
func (l Layout) VariantStore(vcf string, chrom string) string {
	return filepath.Join(l.VCFDir, Stem(vcf)+"_"+chrom+".npz")
}

// ChromResult is the per-chromosome prediction file. Lexicographic order of
// these names is the order chromosomes appear in the genome-wide file.
func (l Layout) ChromResult(chrom string) string {
	return filepath.Join(l.Dir, chrom+ChromResultSuffix)
}

const ChromResultSuffix = ".CHPREDICT.txt"

func (l Layout) GenomeResult(vcf string) string {
	return filepath.Join(l.Dir, Stem(vcf)+".PREDICT.txt")
}

package predict

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"

	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/batch"
	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/dataset"
	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/merge"
	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/network"
	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/ploidy"
	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/project"
	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/variants"
	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/windows"
)

// Driver predicts every chromosome listed in the project's window size file,
// one after the other, and merges the results into a genome-wide file.
// Any failure aborts the run.
type Driver struct {
	Layout    project.Layout
	Predictor network.Predictor
	Ploidy    ploidy.Detector // defaults to ploidy.FirstSample
	Progress  io.Writer       // progress bar output, discarded when nil
	Summary   io.Writer       // per-chromosome table, skipped when nil
}

// ChromResult describes one predicted chromosome.
type ChromResult struct {
	Chrom   string
	Padding windows.Padding
	Ploidy  ploidy.Result
	File    string
}

// Run predicts the chromosomes of vcf and returns the path of the
// genome-wide prediction file.
func (d *Driver) Run(ctx context.Context, vcf string) (string, []ChromResult, error) {
	catalog, err := windows.LoadCatalog(d.Layout.WindowsFile())
	if err != nil {
		return "", nil, err
	}
	slog.Info("Loaded window sizes", "chromosomes", strings.Join(catalog.Chroms(), ","),
		"maxWindowSize", catalog.MaxWindowSize(), "maxMeanSnps", catalog.MaxMeanSnps())
	infos, err := dataset.LoadAll(d.Layout.DatasetInfoFiles()...)
	if err != nil {
		return "", nil, err
	}

	// Every chromosome is binned before any is predicted, so a dense
	// chromosome late in the list still widens the run's padding length.
	pads := make([]windows.Padding, len(catalog))
	observed := 0
	for i, rec := range catalog {
		pad, err := d.scanChrom(vcf, rec)
		if err != nil {
			return "", nil, errors.Wrapf(err, "chromosome %s", rec.Chrom)
		}
		pads[i] = pad
		observed = max(observed, pad.MaxSnps)
	}

	// One padding length for every chromosome, so the network sees a single input shape.
	maxLen := windows.MaxSegSites(infos, max(catalog.MaxSnps(), observed))
	slog.Info("Padding windows to " + strconv.Itoa(maxLen) + " segregating sites")

	progress := d.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(catalog),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Predicting chromosomes"),
	)

	results := make([]ChromResult, 0, len(catalog))
	for i, rec := range catalog {
		res, err := d.predictChrom(ctx, vcf, rec, pads[i], infos[0].Path, maxLen)
		if err != nil {
			return "", nil, errors.Wrapf(err, "chromosome %s", rec.Chrom)
		}
		results = append(results, res)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	files := make([]string, len(results))
	for i, r := range results {
		files[i] = r.File
	}
	genome := d.Layout.GenomeResult(vcf)
	if err := merge.Merge(files, genome); err != nil {
		return "", nil, err
	}
	slog.Info("Wrote genome-wide predictions to " + genome)

	if d.Summary != nil {
		writeSummary(d.Summary, results)
	}
	return genome, results, nil
}

// scanChrom bins the positions of one chromosome and enforces the per-window
// SNP cap.
func (d *Driver) scanChrom(vcf string, rec windows.Record) (windows.Padding, error) {
	store, err := variants.Load(d.Layout.VariantStore(vcf, rec.Chrom))
	if err != nil {
		return windows.Padding{}, err
	}
	return windows.ResolvePadding(rec.WindowSize, store.Positions)
}

func (d *Driver) predictChrom(ctx context.Context, vcf string, rec windows.Record, pad windows.Padding, info string, maxLen int) (ChromResult, error) {
	path := d.Layout.VariantStore(vcf, rec.Chrom)
	slog.Info("Importing variant store: " + path)
	store, err := variants.Load(path)
	if err != nil {
		return ChromResult{}, err
	}

	ids, err := windows.IndexRanges(store.Positions, rec.WindowSize)
	if err != nil {
		return ChromResult{}, err
	}

	detector := d.Ploidy
	if detector == nil {
		detector = ploidy.FirstSample{}
	}
	pl, err := detector.Detect(store.Genotypes)
	if err != nil {
		return ChromResult{}, err
	}
	if rec.Samples != pl.Samples {
		slog.Warn("Sample count differs from the one used in training",
			"chrom", rec.Chrom, "training", rec.Samples, "detected", pl.Samples, "ploidy", pl.String())
	}

	params := batch.Build(info, rec.Chrom, pad, ids, store, maxLen, pl.Haploid, pl.Samples)
	manifest, err := batch.Write(d.Layout.Dir, params)
	if err != nil {
		return ChromResult{}, err
	}
	defer func() {
		if err := batch.Remove(d.Layout.Dir, rec.Chrom); err != nil {
			slog.Warn("Unable to remove batch files", "chrom", rec.Chrom, "error", err)
		}
	}()

	resultFile := d.Layout.ChromResult(rec.Chrom)
	if err := d.Predictor.Predict(ctx, manifest, resultFile); err != nil {
		return ChromResult{}, err
	}
	return ChromResult{Chrom: rec.Chrom, Padding: pad, Ploidy: pl, File: resultFile}, nil
}

func writeSummary(w io.Writer, results []ChromResult) {
	table := tablewriter.NewWriter(w)
	table.Header("chrom", "window", "windows", "min SNPs", "mean SNPs", "max SNPs", "ploidy")
	for _, r := range results {
		_ = table.Append([]string{
			r.Chrom,
			strconv.Itoa(r.Padding.WindowSize),
			strconv.Itoa(r.Padding.Bins),
			strconv.Itoa(r.Padding.MinSnps),
			strconv.Itoa(r.Padding.MeanSnps),
			strconv.Itoa(r.Padding.MaxSnps),
			fmt.Sprint(r.Ploidy),
		})
	}
	_ = table.Render()
}

package convert

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"v.io/v23/glob"

	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/project"
	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/variants"
)

// DefaultExcludeContigs leaves out alternate, decoy and unplaced contigs and
// the mitochondrial and EBV sequences.
const DefaultExcludeContigs = "{*_alt,*_decoy,*_random,chrUn*,HLA*,chrM,chrEBV}"

var ConvertCmd = &cli.Command{
	Name:      "convert",
	Usage:     "Split a VCF into per-chromosome variant stores",
	UsageText: "relernn convert [options] <input.vcf[.gz]> <projectDir>",
	ArgsUsage: "<input.vcf[.gz]> <projectDir>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "exclude-contigs",
			Aliases:     []string{"e"},
			Usage:       "Glob pattern to exclude certain contigs from conversion",
			DefaultText: DefaultExcludeContigs,
			Value:       DefaultExcludeContigs,
			Action: func(ctx context.Context, cmd *cli.Command, v string) error {
				if _, err := glob.Parse(v); err != nil {
					return cli.Exit("Error: Unable to parse contig exclusion glob", 1)
				}
				return nil
			},
		},
	},
	Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		// Check if the correct number of arguments is provided
		if cmd.Args().Len() != 2 {
			cli.ShowSubcommandHelp(cmd)
			return nil, cli.Exit("Error: Incorrect number of arguments. Expected 2 arguments while "+strconv.Itoa(cmd.Args().Len())+" were given", 1)
		}

		// Check if the input file exists
		if _, err := os.Stat(cmd.Args().Get(0)); os.IsNotExist(err) {
			return nil, cli.Exit("Error: Input file does not exist", 1)
		}
		return ctx, nil
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if _, err := Split(cmd.Args().Get(0), project.New(cmd.Args().Get(1)), cmd.String("exclude-contigs")); err != nil {
			return cli.Exit("Error: "+err.Error(), 1)
		}
		return nil
	},
}

type vcfReader struct {
	io.Reader
	closers []io.Closer
}

func (r *vcfReader) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenVCF opens a plain or BGZF compressed VCF.
func OpenVCF(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") && !strings.HasSuffix(path, ".bgz") {
		return f, nil
	}
	bg, err := bgzf.NewReader(f, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "%s is not BGZF compressed", path)
	}
	return &vcfReader{Reader: bg, closers: []io.Closer{f, bg}}, nil
}

// Split writes one variant store per chromosome of infile into the project's
// splitVCFs directory and returns the chromosomes in file order. Contigs
// matching the excludeContigs glob are left out; an empty pattern keeps all.
func Split(infile string, layout project.Layout, excludeContigs string) ([]string, error) {
	var exclude *glob.Glob
	if excludeContigs != "" {
		g, err := glob.Parse(excludeContigs)
		if err != nil {
			return nil, errors.Wrap(err, "unable to parse contig exclusion glob")
		}
		exclude = g
	}

	in, err := OpenVCF(infile)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read VCF file %s", infile)
	}
	defer in.Close()

	res, err := readVCF(in, exclude)
	if err != nil {
		return nil, errors.Wrap(err, infile)
	}
	if res.skipped > 0 {
		slog.Warn("Skipped records that are not biallelic SNPs", "count", res.skipped)
	}
	if len(res.chroms) == 0 {
		return nil, errors.Errorf("%s holds no biallelic SNPs", infile)
	}

	if err := os.MkdirAll(layout.VCFDir, 0o755); err != nil {
		return nil, err
	}
	for _, chrom := range res.chroms {
		store := res.stores[chrom]
		out := layout.VariantStore(infile, chrom)
		slog.Info("Writing chromosome: "+chrom, "variants", len(store.Positions), "samples", res.samples)
		if err := variants.Write(out, store); err != nil {
			return nil, err
		}
	}
	return res.chroms, nil
}

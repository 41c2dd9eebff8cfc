package predict

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/merge"
	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/network"
	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/project"
)

var PredictCmd = &cli.Command{
	Name:  "predict",
	Usage: "Predict the recombination rate of every genomic window along the chromosomes",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      "vcf",
			Usage:     "Filtered and QC-checked VCF file. Every row must correspond to a biallelic SNP with no missing data",
			Required:  true,
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:     "projectDir",
			Usage:    "Directory for all project output. The same projectDir must be used for every ReLERNN step",
			Required: true,
		},
		&cli.IntFlag{
			Name:        "gpuID",
			Usage:       "Identifier specifying which GPU to use",
			Value:       0,
			DefaultText: "0",
			Action: func(ctx context.Context, cmd *cli.Command, v int) error {
				if v < 0 {
					return cli.Exit("Error: GPU identifier must be a non-negative integer", 1)
				}
				return nil
			},
		},
		&cli.StringFlag{
			Name:    "infer-cmd",
			Usage:   "Program that loads the trained network and writes predictions for a batch",
			Value:   "relernn-infer",
			Sources: cli.EnvVars("RELERNN_INFER"),
		},
	},
	Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		// Check if the VCF file exists
		if _, err := os.Stat(cmd.String("vcf")); os.IsNotExist(err) {
			return nil, cli.Exit("Error: VCF file does not exist", 1)
		}

		// Check if the project directory exists
		if fi, err := os.Stat(cmd.String("projectDir")); err != nil || !fi.IsDir() {
			return nil, cli.Exit("Error: Project directory does not exist", 1)
		}

		// Check if the trained network is present
		layout := project.New(cmd.String("projectDir"))
		if _, err := os.Stat(layout.WindowsFile()); os.IsNotExist(err) {
			return nil, cli.Exit("Error: Window size file does not exist. Was the network trained in this project?", 1)
		}
		return ctx, nil
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		layout := project.New(cmd.String("projectDir"))
		predictor := &network.Exec{
			Command: cmd.String("infer-cmd"),
			Model:   layout.ModelFile(),
			Weights: layout.WeightsFile(),
			GPU:     cmd.Int("gpuID"),
		}
		if err := predictor.CheckArtifacts(); err != nil {
			return cli.Exit("Error: "+err.Error(), 1)
		}

		d := &Driver{
			Layout:    layout,
			Predictor: predictor,
			Progress:  os.Stderr,
			Summary:   os.Stdout,
		}
		if _, _, err := d.Run(ctx, cmd.String("vcf")); err != nil {
			return cli.Exit("Error: "+err.Error(), 1)
		}
		return nil
	},
}

// MergeCmd rebuilds the genome-wide file from per-chromosome predictions
// left behind by an interrupted merge.
var MergeCmd = &cli.Command{
	Name:  "merge",
	Usage: "Merge per-chromosome predictions into the genome-wide prediction file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "vcf",
			Usage:    "VCF file the predictions were made for. Only its name is used",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "projectDir",
			Usage:    "Directory holding the per-chromosome predictions",
			Required: true,
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		layout := project.New(cmd.String("projectDir"))
		files, err := merge.Collect(layout.Dir, project.ChromResultSuffix)
		if err != nil {
			return cli.Exit("Error: "+err.Error(), 1)
		}
		if err := merge.Merge(files, layout.GenomeResult(cmd.String("vcf"))); err != nil {
			return cli.Exit("Error: "+err.Error(), 1)
		}
		return nil
	},
}

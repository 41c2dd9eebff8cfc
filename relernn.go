package main

import (
	"context"
	"net/mail"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/CenterForMedicalGeneticsGhent/relernn/convert"
	"github.com/CenterForMedicalGeneticsGhent/relernn/docs"
	"github.com/CenterForMedicalGeneticsGhent/relernn/predict"
)

func main() {
	Cmd := &cli.Command{
		Name:    "relernn",
		Version: "0.1.0",
		Authors: []any{
			&mail.Address{
				Name:    "CMGG ICT Team",
				Address: "ict.cmgg@uzgent.be",
			},
		},
		Copyright: "Copyright (c) " + time.Now().Format("2006") + " Center for Medical Genetics Ghent, Ghent University Hospital",
		Usage:     "Recombination landscape estimation using recurrent neural networks",
		UsageText: "relernn [global options] command [command options]",
		Commands: []*cli.Command{
			convert.ConvertCmd,
			predict.PredictCmd,
			predict.MergeCmd,
			docs.BuildCmd,
		},
		EnableShellCompletion: true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cli.ShowAppHelp(cmd)
			return nil
		},
	}

	if err := Cmd.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/staranto/seqctl/internal/config"
	"github.com/staranto/seqctl/internal/meta"
	"github.com/staranto/seqctl/internal/version"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	cfg, _ := config.Load()

	// The arg[1] immediately following the binary (arg[0]) is the seqctl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values.
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}
	meta.Config.Namespace = meta.Command()
	config.Config.Namespace = meta.Config.Namespace

	app := &cli.Command{
		Name:    "seqctl",
		Usage:   "Sequence Control",
		Version: version.Version,
		// --version is handled here rather than by cli so -v works too.
		HideVersion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "seqctl version info",
				HideDefault: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("version") {
				_, err := writer(cmd).Write([]byte(version.Version + "\n"))
				return err
			}
			return cli.ShowRootCommandHelp(cmd)
		},
	}

	app.Commands = append(app.Commands,
		EvalCommandBuilder(meta),
		SeqCommandBuilder(meta),
		SequencesCommandBuilder(meta),
		QuotesCommandBuilder(meta),
		CompletionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

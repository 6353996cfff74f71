// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/seqctl/internal/meta"
	"github.com/staranto/seqctl/internal/quotes"
)

// ErrNotATerminal is returned when --tui is asked for without a terminal.
var ErrNotATerminal = errors.New("--tui requires an interactive terminal")

// QuotesCommandAction is the action handler for the "quotes" subcommand. It
// runs the quote browser on the command's reader and writer until the user
// quits or input ends.
func QuotesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "quotes") {
		return nil
	}

	var opts []quotes.ModelOption
	if cmd.IsSet("seed") {
		seed := cmd.Uint64("seed")
		opts = append(opts, quotes.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}
	model := quotes.NewModel(opts...)

	in := reader(cmd)
	out := writer(cmd)

	if cmd.Bool("tui") {
		if !isTerminal(in) {
			return ErrNotATerminal
		}
		return quotes.RunTUI(ctx, model, in, out)
	}

	return quotes.NewController(model, quotes.NewTerminalView(in, out)).Run(ctx)
}

func reader(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// QuotesCommandBuilder constructs the cli.Command definition for the "quotes"
// command.
func QuotesCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "quotes",
		Usage:     "browse and add quotes",
		UsageText: `seqctl quotes [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			newTLDRFlag(),
			&cli.BoolFlag{
				Name:        "tui",
				Usage:       "use the full screen interface",
				HideDefault: true,
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "seed for random quote selection",
			},
		},
		Action: QuotesCommandAction,
	}
}

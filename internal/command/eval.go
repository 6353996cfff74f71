// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/seqctl/internal/meta"
	"github.com/staranto/seqctl/internal/output"
)

// DefaultEvalIndex is evaluated when no index is given.
const DefaultEvalIndex = "50"

var evalExamples = [][2]string{
	{"seqctl eval", "f(50) of the Fibonacci numbers"},
	{"seqctl eval 10 20 100", "several terms, one per line"},
	{"seqctl eval -q lucas --commas 90", "the 90th Lucas number, grouped with commas"},
	{"seqctl eval --defs seqs.hcl -q padovan 40", "a sequence from a definitions file"},
	{"seqctl eval -T 5000", "report how long the computation took"},
}

// EvalCommandAction is the action handler for the "eval" subcommand. It
// prints f(N) for each index argument, one per line.
func EvalCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "eval") {
		return nil
	}

	w := writer(cmd)
	if cmd.Bool("examples") {
		output.DumpExamples(w, evalExamples)
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) == 0 {
		args = []string{DefaultEvalIndex}
	}

	// Validate every index before computing any of them.
	indexes := make([]int, 0, len(args))
	for _, a := range args {
		n, err := ParseIndex(a)
		if err != nil {
			return err
		}
		indexes = append(indexes, n)
	}

	e, err := NewEvaluator(cmd)
	if err != nil {
		return err
	}

	for _, n := range indexes {
		start := time.Now()
		v, err := e.Evaluate(n)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		s := v.String()
		if cmd.Bool("commas") {
			s = humanize.BigComma(v)
		}

		if cmd.Bool("time") {
			fmt.Fprintf(w, "%s  (%s)\n", s, humanize.SIWithDigits(elapsed.Seconds(), 2, "s"))
		} else {
			fmt.Fprintln(w, s)
		}
	}

	stats := e.Memo().Stats()
	log.Debugf("%s memo: %d entries, %d hits, %d misses",
		e.Recurrence().Name, stats.Entries, stats.Hits, stats.Misses)

	return nil
}

// EvalCommandBuilder constructs the cli.Command definition for the "eval"
// command.
func EvalCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "evaluate terms of a sequence",
		UsageText: `seqctl eval [N...] [options]`,
		ArgsUsage: "[N...]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewSequenceFlag("eval", meta.Config.Source),
			NewDefsFlag("eval", meta.Config.Source),
			newCommasFlag(),
			newTLDRFlag(),
			&cli.BoolFlag{
				Name:        "time",
				Aliases:     []string{"T"},
				Usage:       "print how long each term took to compute",
				HideDefault: true,
			},
			&cli.BoolFlag{
				Name:        "examples",
				Usage:       "show example invocations",
				HideDefault: true,
			},
		},
		Action: EvalCommandAction,
	}
}

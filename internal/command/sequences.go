// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/staranto/seqctl/internal/meta"
	"github.com/staranto/seqctl/internal/sequence"
)

// SequencesCommandAction is the action handler for the "sequences"
// subcommand. It lists the built-in recurrences followed by those read from
// --defs. A definition that shadows a built-in replaces it.
func SequencesCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[*Definition]{
		CommandName:  "sequences",
		SchemaType:   reflect.TypeOf(Definition{}),
		DefaultAttrs: []string{"name", "order", "seeds", "coefficients", "source", "!description"},
		FetchFn: func(_ context.Context, cmd *cli.Command) ([]*Definition, error) {
			defs, err := LoadDefinitions(cmd)
			if err != nil {
				return nil, err
			}
			return knownDefinitions(defs), nil
		},
	}
	return runner.Run(ctx, cmd)
}

func knownDefinitions(defs []sequence.Recurrence) []*Definition {
	var out []*Definition
	for _, b := range sequence.Builtins() {
		rec, _ := sequence.Lookup(b.Name, defs...)
		out = append(out, NewDefinition(rec))
	}
	for _, d := range defs {
		if r, err := sequence.Lookup(d.Name); err == nil && r.Source == sequence.SourceBuiltin {
			continue
		}
		out = append(out, NewDefinition(d))
	}
	return out
}

// SequencesCommandBuilder constructs the cli.Command definition for the
// "sequences" command.
func SequencesCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "sequences",
		Usage:     "list known sequences",
		UsageText: `seqctl sequences [options]`,
		Flags: []cli.Flag{
			NewDefsFlag("sequences", meta.Config.Source),
		},
		Action: SequencesCommandAction,
		Meta:   meta,
	}).Build()
}

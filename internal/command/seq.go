// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/seqctl/internal/meta"
	"github.com/staranto/seqctl/internal/sequence"
)

// SeqCommandAction is the action handler for the "seq" subcommand. It emits
// the terms --from..--to of the selected sequence through the common output
// pipeline.
func SeqCommandAction(ctx context.Context, cmd *cli.Command) error {
	var transforms []string
	if cmd.Bool("commas") {
		transforms = append(transforms, "value::c")
	}

	runner := &QueryActionRunner[*Term]{
		CommandName:  "seq",
		SchemaType:   reflect.TypeOf(Term{}),
		DefaultAttrs: []string{"index", "value", "!digits", "!sequence"},
		Transforms:   transforms,
		FetchFn:      fetchTerms,
	}
	return runner.Run(ctx, cmd)
}

func fetchTerms(_ context.Context, cmd *cli.Command) ([]*Term, error) {
	from, to := cmd.Int("from"), cmd.Int("to")
	if from < 0 || to < from {
		return nil, fmt.Errorf("%w: range %d..%d", sequence.ErrInvalidArgument, from, to)
	}

	e, err := NewEvaluator(cmd)
	if err != nil {
		return nil, err
	}

	values, err := e.Terms(from, to)
	if err != nil {
		return nil, err
	}
	log.Debugf("computed %d terms of %s", len(values), e.Recurrence().Name)

	name := e.Recurrence().Name
	terms := make([]*Term, 0, len(values))
	for i, v := range values {
		terms = append(terms, NewTerm(name, from+i, v))
	}
	return terms, nil
}

// SeqCommandBuilder constructs the cli.Command definition for the "seq"
// command, wiring flags, metadata, and the action/validator handlers.
func SeqCommandBuilder(meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		NewSequenceFlag("seq", meta.Config.Source),
		NewDefsFlag("seq", meta.Config.Source),
		newCommasFlag(),
		newRangeFlag("from", "first index to emit", 0, meta.Config.Source),
		newRangeFlag("to", "last index to emit", 20, meta.Config.Source),
	}
	flags = append(flags, NewExportFlags("seq", meta.Config.Source)...)

	return (&QueryCommandBuilder{
		Name:      "seq",
		Usage:     "table of sequence terms",
		UsageText: `seqctl seq [options]`,
		Flags:     flags,
		Action:    SeqCommandAction,
		Meta:      meta,
	}).Build()
}

func newRangeFlag(name, usage string, value int, path string) *cli.IntFlag {
	return &cli.IntFlag{
		Name:  name,
		Usage: usage,
		Value: value,
		Sources: cli.NewValueSourceChain(
			yaml.YAML("seq."+name, altsrc.StringSourcer(path)),
		),
		Validator: func(value int) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"
	"strconv"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/hashicorp/jsonapi"
	"github.com/urfave/cli/v3"

	"github.com/staranto/seqctl/internal/attrs"
	awsx "github.com/staranto/seqctl/internal/aws"
	"github.com/staranto/seqctl/internal/config"
	"github.com/staranto/seqctl/internal/export"
	"github.com/staranto/seqctl/internal/meta"
	"github.com/staranto/seqctl/internal/output"
	"github.com/staranto/seqctl/internal/sequence"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr seqctl-<subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "seqctl-"+subcmd)
			c.Stdout = writer(cmd)
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the attribute schema for the provided type
// when --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(writer(cmd), "", t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList, err error) {
	for _, d := range defaults {
		if err = al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err = al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	err = al.SetGlobalTransformSpec()
	return
}

// EmitJSONAPISlice marshals a slice as JSONAPI and passes it to the common
// output routine.
func EmitJSONAPISlice(results any, al attrs.AttrList, cmd *cli.Command, w io.Writer) error {
	var raw bytes.Buffer
	if err := jsonapi.MarshalPayload(&raw, results); err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return output.SliceDiceSpit(raw, al, output.OptionsFromCommand(cmd), "data", w)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// writer is where actions print. It is the root command's Writer so tests can
// capture it.
func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// ParseIndex converts a command line argument to a term index.
func ParseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", sequence.ErrInvalidArgument, arg)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", sequence.ErrInvalidArgument, n)
	}
	return n, nil
}

// LoadDefinitions reads the --defs file, if any.
func LoadDefinitions(cmd *cli.Command) ([]sequence.Recurrence, error) {
	path := cmd.String("defs")
	if path == "" {
		return nil, nil
	}
	log.Debugf("loading definitions from %s", path)
	return sequence.LoadDefinitions(path)
}

// NewEvaluator builds an evaluator for the --sequence flag, consulting --defs
// before the built-ins.
func NewEvaluator(cmd *cli.Command) (*sequence.Evaluator, error) {
	defs, err := LoadDefinitions(cmd)
	if err != nil {
		return nil, err
	}
	rec, err := sequence.Lookup(cmd.String("sequence"), defs...)
	if err != nil {
		return nil, err
	}
	return sequence.New(rec)
}

// QueryCommandBuilder is a helper that constructs a cli.Command for the
// table producing subcommands (seq, sequences) using a consistent pattern.
// The builder wires metadata, adds tldr/schema flags, applies global flags,
// and sets up validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: append(qcb.Flags, append([]cli.Flag{
			newTLDRFlag(),
			newSchemaFlag(),
		}, NewGlobalFlags(qcb.Name, qcb.Meta.Config.Source)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}

// QueryActionRunner[T] encapsulates the common action pattern for the table
// producing subcommands. FetchFn supplies the resources; everything around it
// (short-circuit flags, attrs, rendering, export) is shared.
type QueryActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	// Transforms are attr specs layered over the defaults, such as the value
	// spec added by --commas. --attrs still overrides them.
	Transforms []string
	FetchFn    func(context.Context, *cli.Command) ([]T, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner[T]) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, qar.CommandName) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, qar.SchemaType) {
		return nil
	}

	defaults := append(append([]string{}, qar.DefaultAttrs...), qar.Transforms...)
	attrs, err := BuildAttrs(cmd, defaults...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", attrs.String())

	results, err := qar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	dest := cmd.String("export")
	if dest == "" {
		return EmitJSONAPISlice(results, attrs, cmd, writer(cmd))
	}

	// Render once, then fan the same bytes out to the terminal and the
	// export destination.
	var buf bytes.Buffer
	if err := EmitJSONAPISlice(results, attrs, cmd, &buf); err != nil {
		return err
	}
	if _, err := writer(cmd).Write(buf.Bytes()); err != nil {
		return err
	}
	return ExportTo(ctx, cmd, dest, buf.Bytes())
}

// ExportTo writes body to dest using the AWS settings on cmd.
func ExportTo(ctx context.Context, cmd *cli.Command, dest string, body []byte) error {
	attempts, _ := config.GetInt("export.attempts", 3)
	e, err := export.New(ctx, dest,
		awsx.WithProfile(cmd.String("aws-profile")),
		awsx.WithRegion(cmd.String("aws-region")),
		awsx.WithEndpoint(cmd.String("s3-endpoint")),
		awsx.WithRetryer(func() awsv2.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				o.MaxAttempts = attempts
			})
		}),
	)
	if err != nil {
		return err
	}
	if err := e.Export(ctx, body); err != nil {
		return err
	}
	log.Debugf("exported %d bytes to %s", len(body), dest)
	return nil
}

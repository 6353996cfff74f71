// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/seqctl/internal/export"
)

// GlobalFlagsValidator checks flag combinations that no single flag validator
// can see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("schema") && c.IsSet("output") && c.String("output") != "text" {
		return errors.New("--schema only supports text output")
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

// NonNegativeValidator rejects term indexes below zero.
func NonNegativeValidator(value any) error {
	if value.(int) < 0 {
		return errors.New("must be >= 0")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	if !slices.Contains(validOutputFlagValues, value.(string)) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// ExportValidator rejects destinations export.New could never write to.
func ExportValidator(value any) error {
	if value.(string) == "" {
		return nil
	}
	_, err := export.ParseDestination(value.(string))
	return err
}

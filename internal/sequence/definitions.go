// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sequence

import (
	"fmt"
	"math/big"
	"os"

	"github.com/apex/log"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
)

type definitionsFile struct {
	Sequences []definitionBlock `hcl:"sequence,block"`
}

type definitionBlock struct {
	Name         string    `hcl:"name,label"`
	Description  string    `hcl:"description,optional"`
	Seeds        cty.Value `hcl:"seeds"`
	Coefficients cty.Value `hcl:"coefficients"`
}

// LoadDefinitions reads recurrences from an HCL (.hcl) or HCL JSON (.json)
// file.
func LoadDefinitions(path string) ([]Recurrence, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	return ParseDefinitions(path, src)
}

// ParseDefinitions decodes src. filename selects the syntax by extension and
// is recorded as each recurrence's Source.
func ParseDefinitions(filename string, src []byte) ([]Recurrence, error) {
	var file definitionsFile
	if err := hclsimple.Decode(filename, src, nil, &file); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDefinition, err)
	}

	seen := map[string]bool{}
	recs := make([]Recurrence, 0, len(file.Sequences))
	for _, b := range file.Sequences {
		if seen[b.Name] {
			return nil, fmt.Errorf("%w: %s: defined more than once", ErrInvalidDefinition, b.Name)
		}
		seen[b.Name] = true

		seeds, err := wholeNumbers(b.Seeds)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: seeds: %s", ErrInvalidDefinition, b.Name, err)
		}
		coefficients, err := wholeNumbers(b.Coefficients)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: coefficients: %s", ErrInvalidDefinition, b.Name, err)
		}

		rec := Recurrence{
			Name:         b.Name,
			Description:  b.Description,
			Seeds:        seeds,
			Coefficients: coefficients,
			Source:       filename,
		}
		if err := rec.Validate(); err != nil {
			return nil, err
		}

		log.Debugf("loaded sequence %s from %s", rec.Name, filename)
		recs = append(recs, rec)
	}

	return recs, nil
}

// wholeNumbers converts a cty list or tuple of numbers into big integers,
// rejecting fractions.
func wholeNumbers(v cty.Value) ([]*big.Int, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, fmt.Errorf("value is required")
	}

	ty := v.Type()
	if !ty.IsListType() && !ty.IsTupleType() {
		return nil, fmt.Errorf("expected a list of numbers, got %s", ty.FriendlyName())
	}

	out := make([]*big.Int, 0, v.LengthInt())
	for _, elem := range v.AsValueSlice() {
		if elem.IsNull() || !elem.IsKnown() || elem.Type() != cty.Number {
			return nil, fmt.Errorf("element %d is not a number", len(out))
		}
		f := elem.AsBigFloat()
		if !f.IsInt() {
			return nil, fmt.Errorf("element %d (%s) is not a whole number", len(out), f.Text('g', -1))
		}
		i, _ := f.Int(nil)
		out = append(out, i)
	}

	return out, nil
}

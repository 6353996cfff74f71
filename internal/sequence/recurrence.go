// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sequence

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	ErrInvalidDefinition = errors.New("invalid sequence definition")
	ErrUnknownSequence   = errors.New("unknown sequence")
)

// SourceBuiltin marks recurrences compiled into seqctl.
const SourceBuiltin = "builtin"

// Recurrence describes f(n) = c1*f(n-1) + c2*f(n-2) + ... + ck*f(n-k) with
// f(0)..f(k-1) given by Seeds and c1..ck by Coefficients.
type Recurrence struct {
	Name         string
	Description  string
	Seeds        []*big.Int
	Coefficients []*big.Int
	// Source is SourceBuiltin or the file the definition was read from.
	Source string
}

// Order is the number of preceding terms each term depends on.
func (r Recurrence) Order() int {
	return len(r.Seeds)
}

// Validate checks the recurrence is well formed.
func (r Recurrence) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDefinition)
	}
	if len(r.Seeds) == 0 {
		return fmt.Errorf("%w: %s: at least one seed is required", ErrInvalidDefinition, r.Name)
	}
	if len(r.Coefficients) != len(r.Seeds) {
		return fmt.Errorf("%w: %s: %d seeds but %d coefficients",
			ErrInvalidDefinition, r.Name, len(r.Seeds), len(r.Coefficients))
	}
	for i, s := range r.Seeds {
		if s == nil {
			return fmt.Errorf("%w: %s: seed %d is empty", ErrInvalidDefinition, r.Name, i)
		}
	}
	for i, c := range r.Coefficients {
		if c == nil {
			return fmt.Errorf("%w: %s: coefficient %d is empty", ErrInvalidDefinition, r.Name, i)
		}
	}
	return nil
}

// Fibonacci is f(0)=0, f(1)=1, f(n)=f(n-1)+f(n-2).
func Fibonacci() Recurrence {
	return builtin("fibonacci", "Fibonacci numbers", ints(0, 1), ints(1, 1))
}

// Builtins returns fresh copies of the compiled-in recurrences, Fibonacci
// first.
func Builtins() []Recurrence {
	return []Recurrence{
		Fibonacci(),
		builtin("lucas", "Lucas numbers", ints(2, 1), ints(1, 1)),
		builtin("pell", "Pell numbers", ints(0, 1), ints(2, 1)),
		builtin("jacobsthal", "Jacobsthal numbers", ints(0, 1), ints(1, 2)),
		builtin("tribonacci", "Tribonacci numbers", ints(0, 0, 1), ints(1, 1, 1)),
	}
}

// Lookup finds a recurrence by case-insensitive name. Definitions in defs
// shadow built-ins of the same name.
func Lookup(name string, defs ...Recurrence) (Recurrence, error) {
	for _, d := range defs {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	for _, b := range Builtins() {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return Recurrence{}, fmt.Errorf("%w: %q", ErrUnknownSequence, name)
}

func builtin(name, desc string, seeds, coefficients []*big.Int) Recurrence {
	return Recurrence{
		Name:         name,
		Description:  desc,
		Seeds:        seeds,
		Coefficients: coefficients,
		Source:       SourceBuiltin,
	}
}

func ints(vs ...int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}

// FormatInts renders values as a bracketed, comma separated list.
func FormatInts(vs []*big.Int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

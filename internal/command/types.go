// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"math/big"

	"github.com/staranto/seqctl/internal/sequence"
)

// Term is one computed value of a sequence, rendered as a JSON:API "terms"
// resource. Value is a decimal string so it survives JSON at any size.
type Term struct {
	ID       string `jsonapi:"primary,terms"`
	Sequence string `jsonapi:"attr,sequence"`
	Index    int    `jsonapi:"attr,index"`
	Value    string `jsonapi:"attr,value"`
	Digits   int    `jsonapi:"attr,digits"`
}

// NewTerm builds the resource for f(index) = value.
func NewTerm(seq string, index int, value *big.Int) *Term {
	s := value.String()
	digits := len(s)
	if value.Sign() < 0 {
		digits--
	}
	return &Term{
		ID:       fmt.Sprintf("%s-%d", seq, index),
		Sequence: seq,
		Index:    index,
		Value:    s,
		Digits:   digits,
	}
}

// Definition is a known recurrence rendered as a JSON:API "sequences"
// resource.
type Definition struct {
	ID           string `jsonapi:"primary,sequences"`
	Name         string `jsonapi:"attr,name"`
	Description  string `jsonapi:"attr,description"`
	Order        int    `jsonapi:"attr,order"`
	Seeds        string `jsonapi:"attr,seeds"`
	Coefficients string `jsonapi:"attr,coefficients"`
	Source       string `jsonapi:"attr,source"`
}

// NewDefinition builds the resource for rec.
func NewDefinition(rec sequence.Recurrence) *Definition {
	return &Definition{
		ID:           rec.Name,
		Name:         rec.Name,
		Description:  rec.Description,
		Order:        rec.Order(),
		Seeds:        sequence.FormatInts(rec.Seeds),
		Coefficients: sequence.FormatInts(rec.Coefficients),
		Source:       rec.Source,
	}
}

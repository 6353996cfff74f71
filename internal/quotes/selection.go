// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package quotes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrOutOfRange marks a quote index outside 0..size-1.
	ErrOutOfRange = errors.New("quote number out of range")

	// ErrParse marks a selection that is not an integer.
	ErrParse = errors.New("quote number is not an integer")
)

// SelectionKind tags the outcome of ParseSelection.
type SelectionKind int

const (
	SelectIndex SelectionKind = iota
	SelectRandom
	SelectOutOfRange
	SelectParseError
	SelectQuit
)

func (k SelectionKind) String() string {
	switch k {
	case SelectIndex:
		return "index"
	case SelectRandom:
		return "random"
	case SelectOutOfRange:
		return "out-of-range"
	case SelectParseError:
		return "parse-error"
	case SelectQuit:
		return "quit"
	}
	return fmt.Sprintf("SelectionKind(%d)", int(k))
}

// Selection is what the user asked for at the quote prompt.
type Selection struct {
	Kind  SelectionKind
	Index int
	Input string

	size int
}

// ParseSelection interprets one line of user input against a list of size
// quotes. Valid indices are -1 (Random) through size-1.
func ParseSelection(input string, size int) Selection {
	in := strings.TrimSpace(input)
	sel := Selection{Input: in, size: size}

	switch strings.ToLower(in) {
	case "q", "quit", "exit":
		sel.Kind = SelectQuit
		return sel
	}

	n, err := strconv.Atoi(in)
	if err != nil {
		sel.Kind = SelectParseError
		return sel
	}
	sel.Index = n

	switch {
	case n == Random && size > 0:
		sel.Kind = SelectRandom
	case n >= 0 && n < size:
		sel.Kind = SelectIndex
	default:
		sel.Kind = SelectOutOfRange
	}
	return sel
}

// Err is nil unless the selection is out of range or unparsable.
func (s Selection) Err() error {
	switch s.Kind {
	case SelectOutOfRange:
		return rangeError(s.size)
	case SelectParseError:
		return &selectionError{kind: ErrParse, size: s.size}
	}
	return nil
}

// selectionError carries the message shown to the user while still matching
// ErrOutOfRange or ErrParse under errors.Is.
type selectionError struct {
	kind error
	size int
}

func (e *selectionError) Error() string {
	return fmt.Sprintf("the quote number should be between 0 and %d", e.size-1)
}

func (e *selectionError) Unwrap() error {
	return e.kind
}

func rangeError(size int) error {
	return &selectionError{kind: ErrOutOfRange, size: size}
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package quotes

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// View is the user-facing half of the quote console. Reads return io.EOF
// when the user has nothing more to say.
type View interface {
	SelectQuote() (string, error)
	Show(quote string)
	Error(err error)
	ConfirmAdd() (bool, error)
	NewQuote() (string, error)
	ShowAll(quotes []string)
}

// TerminalView is a line oriented View.
type TerminalView struct {
	in  *bufio.Reader
	out io.Writer
}

var _ View = (*TerminalView)(nil)

// NewTerminalView reads answers from in and writes prompts to out.
func NewTerminalView(in io.Reader, out io.Writer) *TerminalView {
	return &TerminalView{in: bufio.NewReader(in), out: out}
}

func (v *TerminalView) SelectQuote() (string, error) {
	fmt.Fprint(v.out, "Which quote number would you like to see? ")
	return v.readLine()
}

func (v *TerminalView) Show(quote string) {
	fmt.Fprintf(v.out, "And the quote is: \"%s\"\n", quote)
}

func (v *TerminalView) Error(err error) {
	fmt.Fprintf(v.out, "Error: %s\n", err)
}

// ConfirmAdd is true only for y or Y.
func (v *TerminalView) ConfirmAdd() (bool, error) {
	fmt.Fprint(v.out, "Add a new quote?(Y/N)")
	line, err := v.readLine()
	if err != nil {
		return false, err
	}
	return line == "y" || line == "Y", nil
}

func (v *TerminalView) NewQuote() (string, error) {
	fmt.Fprint(v.out, "Enter a new quote:")
	return v.readLine()
}

func (v *TerminalView) ShowAll(quotes []string) {
	fmt.Fprintln(v.out, "All quotes are listed:")
	for _, q := range quotes {
		fmt.Fprintln(v.out, q)
	}
}

// readLine returns the next line without its terminator. A final line with no
// newline is returned before io.EOF.
func (v *TerminalView) readLine() (string, error) {
	line, err := v.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

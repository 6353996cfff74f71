// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package quotes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	quoteStyle = lipgloss.NewStyle().Italic(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	indexStyle = lipgloss.NewStyle().Faint(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

type tuiStep int

const (
	stepSelect tuiStep = iota
	stepConfirm
	stepAdd
)

// tuiModel is the bubbletea model behind RunTUI. It walks the same select,
// confirm, add cycle as Controller.
type tuiModel struct {
	quotes *Model
	input  textinput.Model
	step   tuiStep
	quote  string
	err    error
}

func newTUIModel(quotes *Model) tuiModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	m := tuiModel{quotes: quotes, input: ti}
	m.setStep(stepSelect)
	return m
}

// RunTUI runs the full screen quote console until the user quits or ctx is
// done.
func RunTUI(ctx context.Context, quotes *Model, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(newTUIModel(quotes),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *tuiModel) setStep(s tuiStep) {
	m.step = s
	m.input.Reset()
	switch s {
	case stepSelect:
		m.input.Prompt = "Which quote number would you like to see? "
		m.input.Placeholder = fmt.Sprintf("0-%d, -1 for random, q to quit", m.quotes.Len()-1)
	case stepConfirm:
		m.input.Prompt = "Add a new quote?(Y/N) "
		m.input.Placeholder = "n"
	case stepAdd:
		m.input.Prompt = "Enter a new quote: "
		m.input.Placeholder = ""
	}
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.step {
	case stepSelect:
		sel := ParseSelection(value, m.quotes.Len())
		switch sel.Kind {
		case SelectQuit:
			return m, tea.Quit
		case SelectIndex, SelectRandom:
			q, err := m.quotes.Quote(sel.Index)
			m.quote, m.err = q, err
		default:
			m.quote, m.err = "", sel.Err()
		}
		m.setStep(stepConfirm)

	case stepConfirm:
		if value == "y" || value == "Y" {
			m.setStep(stepAdd)
		} else {
			m.setStep(stepSelect)
		}

	case stepAdd:
		m.err = m.quotes.Add(value)
		m.setStep(stepSelect)
	}

	return m, nil
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("All quotes are listed:"))
	b.WriteString("\n")
	for i, q := range m.quotes.List() {
		fmt.Fprintf(&b, "%s %s\n", indexStyle.Render(fmt.Sprintf("%3d", i)), q)
	}
	b.WriteString("\n")

	if m.quote != "" {
		b.WriteString(quoteStyle.Render(m.quote))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter to submit, esc to quit"))
	b.WriteString("\n")
	return b.String()
}

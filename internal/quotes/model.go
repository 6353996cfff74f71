// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package quotes

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/apex/log"
)

// Random asks Model.Quote for a randomly chosen quote.
const Random = -1

// ErrEmptyQuote is returned by Add for a blank quote.
var ErrEmptyQuote = errors.New("quote is empty")

// DefaultQuotes seed every new Model.
var DefaultQuotes = []string{
	"A man is not complete until he is married. Then he is finished.",
	"As I said before, I never repeat myself.",
	"Behind a successful man is an exhausted woman.",
	"Black holes really suck...",
	"Facts are stubborn things.",
}

// ModelOption customizes a Model.
type ModelOption func(*Model)

// WithRand sets the random source used for Random selections.
func WithRand(r *rand.Rand) ModelOption {
	return func(m *Model) { m.rnd = r }
}

// WithQuotes replaces the default quotes.
func WithQuotes(quotes ...string) ModelOption {
	return func(m *Model) { m.quotes = append([]string(nil), quotes...) }
}

// Model is the quote store. It is safe for concurrent use.
type Model struct {
	mu     sync.Mutex
	quotes []string
	rnd    *rand.Rand
}

// NewModel returns a Model holding DefaultQuotes unless WithQuotes says
// otherwise.
func NewModel(opts ...ModelOption) *Model {
	m := &Model{quotes: append([]string(nil), DefaultQuotes...)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Len is the number of quotes.
func (m *Model) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.quotes)
}

// RandomIndex returns a valid index chosen uniformly, or -1 when the model is
// empty.
func (m *Model) RandomIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.randomIndex()
}

func (m *Model) randomIndex() int {
	if len(m.quotes) == 0 {
		return -1
	}
	if m.rnd == nil {
		return rand.IntN(len(m.quotes))
	}
	return m.rnd.IntN(len(m.quotes))
}

// Quote returns the quote at index, or a random one when index is Random.
// Any other index outside the list fails with ErrOutOfRange.
func (m *Model) Quote(index int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index == Random {
		index = m.randomIndex()
		log.Debugf("random quote index %d", index)
	}
	if index < 0 || index >= len(m.quotes) {
		return "", rangeError(len(m.quotes))
	}
	return m.quotes[index], nil
}

// Add appends text. Blank text is rejected with ErrEmptyQuote.
func (m *Model) Add(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyQuote
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes = append(m.quotes, text)
	log.Debugf("added quote %d", len(m.quotes)-1)
	return nil
}

// List returns a copy of every quote in insertion order.
func (m *Model) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.quotes...)
}

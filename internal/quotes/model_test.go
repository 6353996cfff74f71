// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package quotes

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Quote(t *testing.T) {
	m := NewModel()

	tests := []struct {
		name    string
		index   int
		want    string
		wantErr error
	}{
		{name: "first", index: 0, want: DefaultQuotes[0]},
		{name: "last", index: 4, want: DefaultQuotes[4]},
		{name: "past end", index: 5, wantErr: ErrOutOfRange},
		{name: "below sentinel", index: -2, wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Quote(tt.index)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "the quote number should be between 0 and 4", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModel_RandomQuote(t *testing.T) {
	m := NewModel(WithRand(rand.New(rand.NewPCG(1, 2))))
	for i := 0; i < 50; i++ {
		q, err := m.Quote(Random)
		require.NoError(t, err)
		assert.Contains(t, DefaultQuotes, q)
	}

	// Same seed, same picks.
	a := NewModel(WithRand(rand.New(rand.NewPCG(7, 7))))
	b := NewModel(WithRand(rand.New(rand.NewPCG(7, 7))))
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.RandomIndex(), b.RandomIndex())
	}
}

func TestModel_Empty(t *testing.T) {
	m := NewModel(WithQuotes())
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, -1, m.RandomIndex())

	_, err := m.Quote(Random)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestModel_Add(t *testing.T) {
	m := NewModel(WithQuotes("one"))

	require.NoError(t, m.Add("  two  "))
	assert.Equal(t, []string{"one", "two"}, m.List())

	assert.ErrorIs(t, m.Add("   "), ErrEmptyQuote)
	assert.Equal(t, 2, m.Len())
}

func TestModel_ListIsACopy(t *testing.T) {
	m := NewModel()
	l := m.List()
	l[0] = "changed"
	q, _ := m.Quote(0)
	assert.Equal(t, DefaultQuotes[0], q)
}

func TestModel_Concurrent(t *testing.T) {
	m := NewModel()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Add("more")
			_, _ = m.Quote(Random)
			_ = m.List()
		}()
	}
	wg.Wait()
	assert.Equal(t, len(DefaultQuotes)+20, m.Len())
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		input     string
		size      int
		wantKind  SelectionKind
		wantIndex int
		wantErr   error
	}{
		{input: "0", size: 5, wantKind: SelectIndex, wantIndex: 0},
		{input: " 4\n", size: 5, wantKind: SelectIndex, wantIndex: 4},
		{input: "-1", size: 5, wantKind: SelectRandom, wantIndex: -1},
		{input: "5", size: 5, wantKind: SelectOutOfRange, wantIndex: 5, wantErr: ErrOutOfRange},
		{input: "-2", size: 5, wantKind: SelectOutOfRange, wantIndex: -2, wantErr: ErrOutOfRange},
		{input: "-1", size: 0, wantKind: SelectOutOfRange, wantIndex: -1, wantErr: ErrOutOfRange},
		{input: "abc", size: 5, wantKind: SelectParseError, wantErr: ErrParse},
		{input: "", size: 5, wantKind: SelectParseError, wantErr: ErrParse},
		{input: "1.5", size: 5, wantKind: SelectParseError, wantErr: ErrParse},
		{input: "q", size: 5, wantKind: SelectQuit},
		{input: "QUIT", size: 5, wantKind: SelectQuit},
		{input: "exit", size: 5, wantKind: SelectQuit},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sel := ParseSelection(tt.input, tt.size)
			assert.Equal(t, tt.wantKind, sel.Kind, sel.Kind.String())
			assert.Equal(t, tt.wantIndex, sel.Index)
			if tt.wantErr == nil {
				assert.NoError(t, sel.Err())
				return
			}
			assert.ErrorIs(t, sel.Err(), tt.wantErr)
		})
	}
}

func TestSelection_ErrMessage(t *testing.T) {
	assert.Equal(t, "the quote number should be between 0 and 4", ParseSelection("x", 5).Err().Error())
	assert.Equal(t, "the quote number should be between 0 and 9", ParseSelection("10", 10).Err().Error())
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package sequence

import (
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/seqctl/internal/cache"
)

// naiveFibonacci is the exponential baseline the memo exists to beat.
func naiveFibonacci(n int) int64 {
	if n < 2 {
		return int64(n)
	}
	return naiveFibonacci(n-1) + naiveFibonacci(n-2)
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad literal %s", s)
	return v
}

func TestEvaluate_Fibonacci(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{n: 0, want: "0"},
		{n: 1, want: "1"},
		{n: 2, want: "1"},
		{n: 5, want: "5"},
		{n: 10, want: "55"},
		{n: 20, want: "6765"},
		{n: 50, want: "12586269025"},
		{n: 93, want: "12200160415121876738"},
		{n: 100, want: "354224848179261915075"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			e := NewFibonacci()
			got, err := e.Evaluate(tt.n)
			require.NoError(t, err)
			assert.Equal(t, 0, mustBig(t, tt.want).Cmp(got), "f(%d) = %s", tt.n, got)
		})
	}
}

func TestEvaluate_Recurrence(t *testing.T) {
	e := NewFibonacci()
	for n := 0; n <= 30; n++ {
		got, err := e.Evaluate(n)
		require.NoError(t, err)

		switch n {
		case 0:
			assert.Equal(t, int64(0), got.Int64())
		case 1:
			assert.Equal(t, int64(1), got.Int64())
		default:
			a, _ := e.Evaluate(n - 1)
			b, _ := e.Evaluate(n - 2)
			assert.Equal(t, 0, new(big.Int).Add(a, b).Cmp(got), "f(%d)", n)
		}
	}
}

func TestEvaluate_MatchesNaive(t *testing.T) {
	e := NewFibonacci()
	for n := 25; n >= 0; n-- {
		got, err := e.Evaluate(n)
		require.NoError(t, err)
		assert.Equal(t, naiveFibonacci(n), got.Int64(), "f(%d)", n)
	}
}

func TestEvaluate_Negative(t *testing.T) {
	e := NewFibonacci()
	before := e.Memo().Stats()

	v, err := e.Evaluate(-1)
	assert.Nil(t, v)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "n must be >= 0")

	assert.Equal(t, before, e.Memo().Stats(), "memo changed on invalid input")
	assert.Equal(t, []int{0, 1}, e.Memo().Keys())
}

func TestEvaluate_Idempotent(t *testing.T) {
	e := NewFibonacci()

	first, err := e.Evaluate(60)
	require.NoError(t, err)
	hitsBefore := e.Memo().Stats().Hits

	second, err := e.Evaluate(60)
	require.NoError(t, err)

	assert.Equal(t, 0, first.Cmp(second))
	assert.Equal(t, hitsBefore+1, e.Memo().Stats().Hits, "second call should be a memo hit")
}

func TestEvaluate_FillsMemo(t *testing.T) {
	e := NewFibonacci()
	_, err := e.Evaluate(10)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, e.Memo().Highest(), 10)
	for i := 0; i <= 10; i++ {
		v, ok := e.Memo().Peek(i)
		require.True(t, ok, "index %d missing", i)
		assert.Equal(t, naiveFibonacci(i), v.Int64())
	}
}

func TestEvaluate_ResultIsACopy(t *testing.T) {
	e := NewFibonacci()
	v, err := e.Evaluate(10)
	require.NoError(t, err)

	v.SetInt64(-1)

	again, err := e.Evaluate(10)
	require.NoError(t, err)
	assert.Equal(t, int64(55), again.Int64())
}

func TestEvaluate_OtherRecurrences(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int64
	}{
		{name: "lucas", n: 6, want: 18},
		{name: "pell", n: 5, want: 29},
		{name: "jacobsthal", n: 6, want: 21},
		{name: "tribonacci", n: 8, want: 24},
		{name: "tribonacci", n: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Lookup(tt.name)
			require.NoError(t, err)
			e, err := New(rec)
			require.NoError(t, err)

			got, err := e.Evaluate(tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestEvaluate_Concurrent(t *testing.T) {
	e := NewFibonacci()

	var wg sync.WaitGroup
	results := make([]*big.Int, 32)
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			v, err := e.Evaluate(200 - g%4)
			assert.NoError(t, err)
			results[g] = v
		}(g)
	}
	wg.Wait()

	want, _ := new(big.Int).SetString("280571172992510140037611932413038677189525", 10)
	for g, v := range results {
		if g%4 == 0 {
			assert.Equal(t, 0, want.Cmp(v))
		}
	}
	assert.GreaterOrEqual(t, e.Memo().Highest(), 200)
}

func TestTerms(t *testing.T) {
	e := NewFibonacci()

	terms, err := e.Terms(5, 10)
	require.NoError(t, err)
	got := make([]int64, len(terms))
	for i, v := range terms {
		got[i] = v.Int64()
	}
	assert.Equal(t, []int64{5, 8, 13, 21, 34, 55}, got)

	_, err = e.Terms(-1, 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.Terms(4, 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNew_WithMemo(t *testing.T) {
	m := cache.NewMemo()
	e, err := New(Fibonacci(), WithMemo(m))
	require.NoError(t, err)
	assert.Same(t, m, e.Memo())
	assert.Equal(t, 1, m.Highest(), "seeds added to supplied memo")

	_, err = e.Evaluate(12)
	require.NoError(t, err)
	assert.Equal(t, 13, m.Len())
}

func TestNew_WithMemoOfAnotherRecurrence(t *testing.T) {
	lucas, err := Lookup("lucas")
	require.NoError(t, err)

	m := cache.NewMemo()
	fib, err := New(Fibonacci(), WithMemo(m))
	require.NoError(t, err)
	_, err = fib.Evaluate(10)
	require.NoError(t, err)

	_, err = New(lucas, WithMemo(m))
	assert.ErrorIs(t, err, ErrInvalidDefinition)
	assert.ErrorContains(t, err, "seed 0")

	// Pell shares Fibonacci's seeds, so the memo is accepted.
	pell, err := Lookup("pell")
	require.NoError(t, err)
	_, err = New(pell, WithMemo(cache.NewMemo(big.NewInt(0), big.NewInt(1))))
	assert.NoError(t, err)

	e, err := New(lucas, WithMemo(cache.NewMemo()))
	require.NoError(t, err)
	v, err := e.Evaluate(5)
	require.NoError(t, err)
	assert.Equal(t, "11", v.String())
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Recurrence{Name: "broken", Seeds: ints(1), Coefficients: ints(1, 1)})
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}

func BenchmarkNaiveFibonacci25(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = naiveFibonacci(25)
	}
}

func BenchmarkEvaluateCold25(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = NewFibonacci().Evaluate(25)
	}
}

func BenchmarkEvaluateWarm1000(b *testing.B) {
	e := NewFibonacci()
	_, _ = e.Evaluate(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Evaluate(1000)
	}
}

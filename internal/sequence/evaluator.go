// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sequence

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"

	"github.com/staranto/seqctl/internal/cache"
)

// ErrInvalidArgument is returned for negative indices and bad ranges.
var ErrInvalidArgument = errors.New("invalid argument")

// Option customizes an Evaluator.
type Option func(*Evaluator)

// WithMemo makes the Evaluator use m instead of a private memo. The
// recurrence's seeds are added to m if missing. New fails when m already holds
// a different value at a seed index.
func WithMemo(m *cache.Memo) Option {
	return func(e *Evaluator) { e.memo = m }
}

// Evaluator computes terms of a single Recurrence. It is safe for concurrent
// use. Concurrent requests for the same uncached index share one fill.
type Evaluator struct {
	rec   Recurrence
	memo  *cache.Memo
	group singleflight.Group
}

// New validates rec and returns an Evaluator whose memo is seeded with the
// recurrence's base cases.
func New(rec Recurrence, opts ...Option) (*Evaluator, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	e := &Evaluator{rec: rec}
	for _, opt := range opts {
		opt(e)
	}

	if e.memo == nil {
		e.memo = cache.NewMemo(rec.Seeds...)
	} else {
		for i, s := range rec.Seeds {
			if e.memo.Put(i, s) {
				continue
			}
			if got, _ := e.memo.Peek(i); got.Cmp(s) != 0 {
				return nil, fmt.Errorf("%w: %s: memo holds %s at seed %d, want %s",
					ErrInvalidDefinition, rec.Name, got, i, s)
			}
		}
	}

	return e, nil
}

// NewFibonacci returns an Evaluator for the Fibonacci numbers.
func NewFibonacci() *Evaluator {
	e, err := New(Fibonacci())
	if err != nil {
		// Fibonacci() is always valid.
		panic(err)
	}
	return e
}

// Recurrence returns the recurrence being evaluated.
func (e *Evaluator) Recurrence() Recurrence {
	return e.rec
}

// Memo returns the evaluator's memo.
func (e *Evaluator) Memo() *cache.Memo {
	return e.memo
}

// Evaluate returns f(n). After it returns successfully the memo holds every
// term 0..n. A negative n fails with ErrInvalidArgument and leaves the memo
// untouched.
func (e *Evaluator) Evaluate(n int) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n must be >= 0, got %d", ErrInvalidArgument, n)
	}

	if v, ok := e.memo.Get(n); ok {
		return v, nil
	}

	v, err, shared := e.group.Do(strconv.Itoa(n), func() (any, error) {
		return e.fill(n), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debugf("%s(%d) shared with a concurrent caller", e.rec.Name, n)
	}

	return new(big.Int).Set(v.(*big.Int)), nil
}

// Terms returns f(from)..f(to) inclusive.
func (e *Evaluator) Terms(from, to int) ([]*big.Int, error) {
	if from < 0 {
		return nil, fmt.Errorf("%w: from must be >= 0, got %d", ErrInvalidArgument, from)
	}
	if to < from {
		return nil, fmt.Errorf("%w: to (%d) must be >= from (%d)", ErrInvalidArgument, to, from)
	}

	if _, err := e.Evaluate(to); err != nil {
		return nil, err
	}

	terms := make([]*big.Int, 0, to-from+1)
	for i := from; i <= to; i++ {
		v, ok := e.memo.Peek(i)
		if !ok {
			return nil, fmt.Errorf("term %d missing after evaluating %d", i, to)
		}
		terms = append(terms, v)
	}
	return terms, nil
}

// fill computes terms bottom-up from the end of the memo's contiguous run to
// n and returns f(n).
func (e *Evaluator) fill(n int) *big.Int {
	k := e.rec.Order()
	start := e.memo.Highest() + 1
	if start > n {
		v, _ := e.memo.Peek(n)
		return v
	}

	// window[k-1] is f(i-1), window[0] is f(i-k).
	window := make([]*big.Int, k)
	for j := 0; j < k; j++ {
		window[j], _ = e.memo.Peek(start - k + j)
	}

	var next *big.Int
	tmp := new(big.Int)
	for i := start; i <= n; i++ {
		next = new(big.Int)
		for j, c := range e.rec.Coefficients {
			if c.Sign() == 0 {
				continue
			}
			next.Add(next, tmp.Mul(c, window[k-1-j]))
		}
		e.memo.Put(i, next)

		copy(window, window[1:])
		window[k-1] = next
	}

	log.Debugf("filled %s terms %d..%d", e.rec.Name, start, n)
	return next
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"math/big"
	"sort"
	"sync"
)

// Stats is a point-in-time snapshot of Memo activity.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Memo maps a non-negative term index to its value. Values are copied on the
// way in and on the way out so callers can never mutate a cached term.
type Memo struct {
	mu      sync.RWMutex
	values  map[int]*big.Int
	highest int
	hits    uint64
	misses  uint64
}

// NewMemo returns a Memo pre-seeded with seeds at indices 0..len(seeds)-1.
func NewMemo(seeds ...*big.Int) *Memo {
	m := &Memo{
		values:  make(map[int]*big.Int, len(seeds)),
		highest: -1,
	}
	for i, s := range seeds {
		m.Put(i, s)
	}
	return m
}

// Get returns a copy of the value stored under n.
func (m *Memo) Get(n int) (*big.Int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[n]
	if !ok {
		m.misses++
		return nil, false
	}
	m.hits++
	return new(big.Int).Set(v), true
}

// Peek is Get without touching the hit and miss counters.
func (m *Memo) Peek(n int) (*big.Int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[n]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(v), true
}

// Put stores v under n unless n is already present. It reports whether v was
// stored. Negative indices and nil values are ignored.
func (m *Memo) Put(n int, v *big.Int) bool {
	if n < 0 || v == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.values[n]; ok {
		return false
	}
	m.values[n] = new(big.Int).Set(v)

	for {
		if _, ok := m.values[m.highest+1]; !ok {
			break
		}
		m.highest++
	}
	return true
}

// Highest returns the largest h such that every index 0..h is present, or -1
// when index 0 is missing.
func (m *Memo) Highest() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.highest
}

// Len returns the number of stored entries.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Keys returns the stored indices in ascending order.
func (m *Memo) Keys() []int {
	m.mu.RLock()
	keys := make([]int, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	m.mu.RUnlock()

	sort.Ints(keys)
	return keys
}

// Stats returns a snapshot of the hit and miss counters.
func (m *Memo) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Hits:    m.hits,
		Misses:  m.misses,
		Entries: len(m.values),
	}
}

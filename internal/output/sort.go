// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"math/big"
	"sort"
	"strings"
)

// SortDataset orders rows in place by the comma separated keys in spec. A
// leading - sorts that key descending. Numbers, and strings holding decimal
// integers of any size, compare numerically. Missing values sort first.
func SortDataset(rows []map[string]interface{}, spec string) {
	if spec == "" || len(rows) < 2 {
		return
	}

	type sortKey struct {
		name string
		desc bool
	}

	var keys []sortKey
	for _, k := range strings.Split(spec, ",") {
		k = strings.TrimSpace(k)
		desc := strings.HasPrefix(k, "-")
		k = strings.TrimPrefix(k, "-")
		if k != "" {
			keys = append(keys, sortKey{name: k, desc: desc})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(rows[i][k.name], rows[j][k.name])
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compareValues returns -1, 0 or 1.
func compareValues(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if x, ok := asInt(a); ok {
		if y, ok := asInt(b); ok {
			return x.Cmp(y)
		}
	}

	if x, ok := a.(float64); ok {
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}

	return strings.Compare(InterfaceToString(a), InterfaceToString(b))
}

func asInt(v interface{}) (*big.Int, bool) {
	switch n := v.(type) {
	case string:
		return new(big.Int).SetString(n, 10)
	case int:
		return big.NewInt(int64(n)), true
	case float64:
		if f := big.NewFloat(n); f.IsInt() {
			i, _ := f.Int(nil)
			return i, true
		}
	}
	return nil, false
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/seqctl/internal/attrs"
)

const termsDoc = `[
  {"type": "terms", "id": "fibonacci-9", "attributes": {"sequence": "fibonacci", "index": 9, "value": "34", "digits": 2, "tags": ["odd"]}},
  {"type": "terms", "id": "fibonacci-10", "attributes": {"sequence": "fibonacci", "index": 10, "value": "55", "digits": 2, "tags": []}},
  {"type": "terms", "id": "fibonacci-12", "attributes": {"sequence": "fibonacci", "index": 12, "value": "144", "digits": 3, "tags": ["square"]}},
  {"type": "terms", "id": "fibonacci-100", "attributes": {"sequence": "fibonacci", "index": 100, "value": "354224848179261915075", "digits": 21, "tags": null}}
]`

func termAttrs(t *testing.T) attrs.AttrList {
	t.Helper()
	var a attrs.AttrList
	require.NoError(t, a.Set(".id,sequence,index,value,digits,tags"))
	return a
}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		delimiter string
		want      []Filter
	}{
		{name: "empty spec", spec: "", want: nil},
		{name: "exact", spec: "index=5", want: []Filter{{Key: "index", Operand: "=", Target: "5"}}},
		{name: "negated exact", spec: "index!=5", want: []Filter{{Key: "index", Negate: true, Operand: "=", Target: "5"}}},
		{name: "prefix", spec: "value^12", want: []Filter{{Key: "value", Operand: "^", Target: "12"}}},
		{name: "regex", spec: "value/^1+$", want: []Filter{{Key: "value", Operand: "/", Target: "^1+$"}}},
		{name: "greater", spec: "value>1000", want: []Filter{{Key: "value", Operand: ">", Target: "1000"}}},
		{
			name: "several",
			spec: "index>3,digits<4",
			want: []Filter{
				{Key: "index", Operand: ">", Target: "3"},
				{Key: "digits", Operand: "<", Target: "4"},
			},
		},
		{name: "invalid skipped", spec: "nonsense,index=1", want: []Filter{{Key: "index", Operand: "=", Target: "1"}}},
		{name: "missing key skipped", spec: "=1", want: nil},
		{name: "empty target", spec: "sequence=", want: []Filter{{Key: "sequence", Operand: "=", Target: ""}}},
		{
			name:      "custom delimiter",
			spec:      "index>3;value@5",
			delimiter: ";",
			want: []Filter{
				{Key: "index", Operand: ">", Target: "3"},
				{Key: "value", Operand: "@", Target: "5"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.delimiter != "" {
				t.Setenv(DelimEnv, tt.delimiter)
			}
			assert.Equal(t, tt.want, BuildFilters(tt.spec))
		})
	}
}

func TestFilter_String(t *testing.T) {
	assert.Equal(t, "index!=5", Filter{Key: "index", Negate: true, Operand: "=", Target: "5"}.String())
}

func TestCheckStringOperand(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		filter Filter
		want   bool
	}{
		{name: "exact", value: "lucas", filter: Filter{Operand: "=", Target: "lucas"}, want: true},
		{name: "exact miss", value: "lucas", filter: Filter{Operand: "=", Target: "pell"}, want: false},
		{name: "negated exact", value: "lucas", filter: Filter{Operand: "=", Target: "pell", Negate: true}, want: true},
		{name: "fold", value: "Lucas", filter: Filter{Operand: "~", Target: "LUCAS"}, want: true},
		{name: "prefix", value: "tribonacci", filter: Filter{Operand: "^", Target: "tri"}, want: true},
		{name: "contains", value: "jacobsthal", filter: Filter{Operand: "@", Target: "cob"}, want: true},
		{name: "negated contains", value: "pell", filter: Filter{Operand: "@", Target: "x", Negate: true}, want: true},
		{name: "regex", value: "fibonacci", filter: Filter{Operand: "/", Target: "^fib"}, want: true},
		{name: "negated regex", value: "fibonacci", filter: Filter{Operand: "/", Target: "^fib", Negate: true}, want: false},
		{name: "bad regex", value: "x", filter: Filter{Operand: "/", Target: "("}, want: false},
		{name: "lexical greater", value: "pell", filter: Filter{Operand: ">", Target: "lucas"}, want: true},
		{name: "lexical less", value: "lucas", filter: Filter{Operand: "<", Target: "pell"}, want: true},
		{name: "unknown operand", value: "x", filter: Filter{Operand: "%", Target: "x"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkStringOperand(tt.value, tt.filter))
		})
	}
}

func TestCheckIntegerOperand(t *testing.T) {
	big100, _ := new(big.Int).SetString("354224848179261915075", 10)

	tests := []struct {
		name   string
		value  *big.Int
		filter Filter
		want   bool
	}{
		{name: "equal", value: big.NewInt(55), filter: Filter{Operand: "=", Target: "55"}, want: true},
		{name: "not equal", value: big.NewInt(55), filter: Filter{Operand: "=", Target: "55", Negate: true}, want: false},
		{name: "numeric not lexical", value: big.NewInt(144), filter: Filter{Operand: ">", Target: "55"}, want: true},
		{name: "less", value: big.NewInt(9), filter: Filter{Operand: "<", Target: "10"}, want: true},
		{name: "beyond int64", value: big100, filter: Filter{Operand: ">", Target: "9223372036854775807"}, want: true},
		{name: "non numeric target falls back to string", value: big.NewInt(12), filter: Filter{Operand: "=", Target: "twelve"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkIntegerOperand(tt.value, tt.filter))
		})
	}
}

func TestCheckNumericOperand(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		filter Filter
		want   bool
	}{
		{name: "equal", value: 10, filter: Filter{Operand: "=", Target: "10"}, want: true},
		{name: "greater", value: 10, filter: Filter{Operand: ">", Target: "9.5"}, want: true},
		{name: "negated less", value: 10, filter: Filter{Operand: "<", Target: "5", Negate: true}, want: true},
		{name: "invalid target", value: 10, filter: Filter{Operand: "=", Target: "ten"}, want: false},
		{name: "prefix on number", value: 120, filter: Filter{Operand: "^", Target: "12"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkNumericOperand(tt.value, tt.filter))
		})
	}
}

func TestCheckContainsOperand(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		filter Filter
		want   bool
	}{
		{name: "slice hit", value: []any{"odd", "prime"}, filter: Filter{Target: "prime"}, want: true},
		{name: "slice miss", value: []any{"odd"}, filter: Filter{Target: "prime"}, want: false},
		{name: "slice negated miss", value: []any{"odd"}, filter: Filter{Target: "prime", Negate: true}, want: true},
		{name: "slice numbers", value: []any{float64(1), float64(2)}, filter: Filter{Target: "2"}, want: true},
		{name: "map key", value: map[string]any{"a": 1}, filter: Filter{Target: "a"}, want: true},
		{name: "map key negated", value: map[string]any{"a": 1}, filter: Filter{Target: "a", Negate: true}, want: false},
		{name: "unsupported", value: 3, filter: Filter{Target: "3"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkContainsOperand(tt.value, tt.filter))
		})
	}
}

func TestFilterDataset(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantIDs []string
	}{
		{name: "no filters", spec: "", wantIDs: []string{"fibonacci-9", "fibonacci-10", "fibonacci-12", "fibonacci-100"}},
		{name: "numeric string value", spec: "value>100", wantIDs: []string{"fibonacci-12", "fibonacci-100"}},
		{name: "json number index", spec: "index<11", wantIDs: []string{"fibonacci-9", "fibonacci-10"}},
		{name: "value prefix", spec: "value^35", wantIDs: []string{"fibonacci-100"}},
		{name: "combined", spec: "digits=2,value!=34", wantIDs: []string{"fibonacci-10"}},
		{name: "array contains", spec: "tags@square", wantIDs: []string{"fibonacci-12"}},
		{name: "null value fails", spec: "tags!@odd", wantIDs: []string{"fibonacci-10", "fibonacci-12"}},
		{name: "unknown key ignored", spec: "nope=1,index=9", wantIDs: []string{"fibonacci-9"}},
		{name: "nothing matches", spec: "sequence=lucas", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := FilterDataset(gjson.Parse(termsDoc), termAttrs(t), tt.spec)

			var ids []string
			for _, row := range rows {
				ids = append(ids, row["id"].(string))
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterDataset_Projection(t *testing.T) {
	var a attrs.AttrList
	require.NoError(t, a.Set("index:n,value,!digits"))

	rows := FilterDataset(gjson.Parse(termsDoc), a, "n=100")
	require.Len(t, rows, 1)

	assert.Equal(t, float64(100), rows[0]["n"])
	assert.Equal(t, "354224848179261915075", rows[0]["value"])
	assert.Equal(t, float64(21), rows[0]["digits"], "excluded attrs are still projected for sorting")
	assert.Len(t, rows[0], 3)
}

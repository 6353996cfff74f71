// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"math/big"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/staranto/seqctl/internal/attrs"
)

const termsPayload = `{"data": [
  {"type": "terms", "id": "fibonacci-0", "attributes": {"sequence": "fibonacci", "index": 0, "value": "0", "digits": 1}},
  {"type": "terms", "id": "fibonacci-10", "attributes": {"sequence": "fibonacci", "index": 10, "value": "55", "digits": 2}},
  {"type": "terms", "id": "fibonacci-9", "attributes": {"sequence": "fibonacci", "index": 9, "value": "34", "digits": 2}},
  {"type": "terms", "id": "fibonacci-50", "attributes": {"sequence": "fibonacci", "index": 50, "value": "12586269025", "digits": 11}}
]}
`

func termAttrs(t *testing.T, spec string) attrs.AttrList {
	t.Helper()
	var a attrs.AttrList
	require.NoError(t, a.Set("index,value"))
	require.NoError(t, a.Set(spec))
	require.NoError(t, a.SetGlobalTransformSpec())
	return a
}

func spit(t *testing.T, a attrs.AttrList, opts Options) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, SliceDiceSpit(*bytes.NewBufferString(termsPayload), a, opts, "data", &out))
	return out.String()
}

func TestSliceDiceSpit_Raw(t *testing.T) {
	assert.Equal(t, termsPayload, spit(t, termAttrs(t, ""), Options{Output: "raw"}))
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	out := spit(t, termAttrs(t, "!digits"), Options{Output: "json", Sort: "index"})

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 4)

	assert.Equal(t, map[string]interface{}{"index": float64(0), "value": "0"}, rows[0])
	assert.Equal(t, "12586269025", rows[3]["value"])
	assert.NotContains(t, rows[0], "digits")
}

func TestSliceDiceSpit_YAML(t *testing.T) {
	out := spit(t, termAttrs(t, "value::c"), Options{Output: "yaml", Filter: "index=50"})

	var rows []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "12,586,269,025", rows[0]["value"])
}

func TestSliceDiceSpit_Text(t *testing.T) {
	out := spit(t, termAttrs(t, ""), Options{Output: "text", Sort: "-value", Titles: true})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "index")
	assert.Contains(t, lines[0], "value")
	assert.Contains(t, lines[1], "12586269025")
	assert.Contains(t, lines[4], "0", "index 0 and value 0 are not blank")
	assert.NotContains(t, lines[4], "-")
}

func TestSliceDiceSpit_TextNoRows(t *testing.T) {
	out := spit(t, termAttrs(t, ""), Options{Filter: "index>1000"})
	assert.Empty(t, out)
}

func TestSliceDiceSpit_UnknownFormat(t *testing.T) {
	var out bytes.Buffer
	err := SliceDiceSpit(*bytes.NewBufferString(termsPayload), termAttrs(t, ""), Options{Output: "xml"}, "data", &out)
	assert.ErrorContains(t, err, "unknown output format: xml")
}

func TestSortDataset(t *testing.T) {
	rows := func() []map[string]interface{} {
		return []map[string]interface{}{
			{"name": "pell", "index": 3.0, "value": "5"},
			{"name": "fibonacci", "index": 10.0, "value": "55"},
			{"name": "lucas", "index": 2.0, "value": "354224848179261915075"},
			{"name": "tribonacci", "index": 10.0, "value": nil},
		}
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{name: "no spec keeps order", spec: "", wantOrder: []string{"pell", "fibonacci", "lucas", "tribonacci"}},
		{name: "ascending by name", spec: "name", wantOrder: []string{"fibonacci", "lucas", "pell", "tribonacci"}},
		{name: "descending by name", spec: "-name", wantOrder: []string{"tribonacci", "pell", "lucas", "fibonacci"}},
		{name: "numeric strings", spec: "value", wantOrder: []string{"tribonacci", "pell", "fibonacci", "lucas"}},
		{name: "numbers then tie break", spec: "-index,name", wantOrder: []string{"fibonacci", "tribonacci", "pell", "lucas"}},
		{name: "unknown key is stable", spec: "nope", wantOrder: []string{"pell", "fibonacci", "lucas", "tribonacci"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := rows()
			SortDataset(data, tt.spec)

			got := make([]string, len(data))
			for i, row := range data {
				got[i] = row["name"].(string)
			}
			assert.Equal(t, tt.wantOrder, got)
		})
	}
}

func TestCompareValues(t *testing.T) {
	assert.Equal(t, -1, compareValues("9", "10"))
	assert.Equal(t, 1, compareValues("b", "a"))
	assert.Equal(t, 0, compareValues(2.0, "2"))
	assert.Equal(t, -1, compareValues(1.5, 2.5))
	assert.Equal(t, -1, compareValues(nil, "0"))
	assert.Equal(t, 0, compareValues(nil, nil))
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "empty string", value: "", emptyVal: "-", want: "-"},
		{name: "zero string", value: "0", emptyVal: "-", want: "0"},
		{name: "int", value: 42, want: "42"},
		{name: "zero int", value: 0, emptyVal: "-", want: "0"},
		{name: "float64 whole", value: 42.0, want: "42"},
		{name: "float64 fraction", value: 42.5, want: "42.5"},
		{name: "big float64", value: 12586269025.0, want: "12586269025"},
		{name: "bool false", value: false, want: "false"},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "nil slice", value: []string(nil), emptyVal: "-", want: "-"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]int{"x": 1}, want: `{"x":1}`},
		{name: "big int", value: big.NewInt(55), want: "55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTag(t *testing.T) {
	tests := []struct {
		name string
		h    string
		s    string
		want Tag
	}{
		{name: "simple attr", s: "attr,value", want: Tag{Kind: "attr", Name: "value"}},
		{name: "with holder", h: "term", s: "attr,value", want: Tag{Kind: "attr", Name: "term.value"}},
		{name: "with encoding", s: "attr,created,iso8601", want: Tag{Kind: "attr", Name: "created", Encoding: "iso8601"}},
		{name: "primary is not an attr", s: "primary,terms", want: Tag{}},
		{name: "empty string", s: "", want: Tag{}},
		{name: "only kind", s: "attr", want: Tag{Kind: "attr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewTag(tt.h, tt.s))
		})
	}
}

func TestDumpSchema(t *testing.T) {
	type inner struct {
		Seed string `jsonapi:"attr,seed"`
	}
	type row struct {
		ID     string `jsonapi:"primary,rows"`
		Value  string `jsonapi:"attr,value"`
		Index  int    `jsonapi:"attr,index"`
		Nested *inner `jsonapi:"attr,nested"`
		Hidden string
	}

	tags := DumpSchemaWalker("", reflect.TypeOf(row{}), 0)
	var names []string
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"value", "index", "nested", "nested.seed"}, names)

	var out bytes.Buffer
	DumpSchema(&out, "", reflect.TypeOf(row{}))
	assert.True(t, strings.HasPrefix(out.String(), "Schema for row --\nindex\nnested\nnested.seed\nvalue\n"), out.String())
}

func TestDumpExamples(t *testing.T) {
	var out bytes.Buffer
	DumpExamples(&out, nil)
	assert.Empty(t, out.String())

	DumpExamples(&out, [][2]string{{"seqctl eval 100", "The 100th Fibonacci number"}})
	assert.Contains(t, out.String(), "seqctl eval 100")
	assert.Contains(t, out.String(), "Command")
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors-that-do-not-exist")
	assert.Equal(t, "#f6be00", header)
	assert.Equal(t, "#ffffff", even)
	assert.Equal(t, "#00c8f0", odd)
}

func BenchmarkSortDataset(b *testing.B) {
	data := make([]map[string]interface{}, 0, 200)
	for i := 200; i > 0; i-- {
		data = append(data, map[string]interface{}{"index": float64(i), "value": big.NewInt(int64(i * i)).String()})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SortDataset(data, "value")
	}
}

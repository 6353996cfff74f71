// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Driller walks path through raw and returns what it finds, or an empty
// Result when any step is missing. Segments are dot separated and may carry
// [n] indexes. An array of exactly one element is stepped into without an
// index, both along the way and at the end of the path.
func Driller(raw string, path string) gjson.Result {
	cur := gjson.Parse(raw)

	for _, seg := range segments(path) {
		_, err := strconv.Atoi(seg)
		isIndex := err == nil

		if cur.IsArray() && !isIndex {
			cur = single(cur)
		}

		if isIndex {
			cur = cur.Get(seg)
		} else {
			cur = cur.Get(gjson.Escape(seg))
		}
		if !cur.Exists() {
			return gjson.Result{}
		}
	}

	if cur.IsArray() {
		return single(cur)
	}
	return cur
}

func single(r gjson.Result) gjson.Result {
	if arr := r.Array(); len(arr) == 1 {
		return arr[0]
	}
	return r
}

// segments splits a.b[0][1].c into a, b, 0, 1, c.
func segments(path string) []string {
	var out []string
	for _, part := range strings.Split(path, ".") {
		for {
			open := strings.IndexByte(part, '[')
			if open < 0 || !strings.HasSuffix(part, "]") {
				break
			}
			closing := strings.IndexByte(part[open:], ']') + open
			if open > 0 {
				out = append(out, part[:open])
			}
			out = append(out, part[open+1:closing])
			part = part[closing+1:]
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
)

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr is one column of command output. The name comes from the JSON:API
// attributes key it is usually pulled from.
type Attr struct {
	// Key is the gjson path into each resource object.
	Key string `yaml:"key"`
	// Include is false for attrs that only exist for filtering or sorting.
	Include bool `yaml:"include"`
	// OutputKey names the value in json and yaml output and titles the column
	// in text output.
	OutputKey string `yaml:"outputKey"`
	// TransformSpec is applied to the value before it is rendered.
	TransformSpec string `yaml:"transformSpec"`
}

// Transform applies the attr's TransformSpec to value. The spec is a run of
// single letter flags and at most one length:
//
//	c   group the digits of an integer with commas
//	l/u lower or upper case, whichever appears last wins
//	N   keep the first N characters
//	-N  keep N characters, eliding the middle with ".."
//
// Values that are neither strings nor numbers are returned untouched.
func (a *Attr) Transform(value interface{}) interface{} {
	if a.TransformSpec == "" {
		return value
	}

	var result string
	switch v := value.(type) {
	case string:
		result = v
	case float64:
		if !strings.ContainsAny(a.TransformSpec, "cC") {
			return value
		}
		if v != math.Trunc(v) {
			return value
		}
		result = strconv.FormatFloat(v, 'f', 0, 64)
	case int:
		if !strings.ContainsAny(a.TransformSpec, "cC") {
			return value
		}
		result = strconv.Itoa(v)
	default:
		return value
	}

	if strings.ContainsAny(a.TransformSpec, "cC") {
		result = commafy(result)
	}

	// A global spec is prepended to each attr's own spec, so the last case
	// flag is the most specific one.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Same rule for lengths: the last one wins.
	match := lengthRegex.FindAllString(a.TransformSpec, -1)
	if len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		result = truncate(result, l)
	}

	return result
}

// commafy groups the digits of s when s is a decimal integer of any size.
func commafy(s string) string {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		log.Debugf("not an integer, leaving %q alone", s)
		return s
	}
	return humanize.BigComma(n)
}

func truncate(s string, l int) string {
	abs := l
	if abs < 0 {
		abs = -abs
	}
	if abs == 0 || len(s) <= abs {
		return s
	}

	if l > 0 {
		return s[:l]
	}

	keep := abs/2 - 1
	if keep < 1 {
		return s[:abs]
	}
	return s[:keep] + ".." + s[len(s)-keep:]
}

type AttrList []Attr

// String renders the list in --attrs syntax.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Set parses a comma separated --attrs value and merges it into the list.
// Each entry is key[:title[:spec]]. A leading ! keeps the attr for filtering
// and sorting but out of the output. Keys are relative to the resource's
// attributes object unless they start with a dot, which makes them relative to
// the resource itself. The key * carries a spec applied to every attr.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		jsonIdx = iota
		outputIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		attr := Attr{Include: true}
		fields := strings.Split(spec, ":")

		attr.Key = strings.TrimSpace(fields[jsonIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("empty attr key in %q", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		switch {
		case len(fields) == 1:
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		case strings.TrimSpace(fields[outputIdx]) != "":
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		default:
			attr.OutputKey = strings.TrimPrefix(attr.Key, ".")
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// Respecifying an existing attr, usually one of the command defaults,
		// updates it in place so column order is kept.
		for i := range *a {
			if (*a)[i].OutputKey == attr.Key || (*a)[i].Key == attr.Key || (*a)[i].Key == "attributes."+attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		if strings.HasPrefix(attr.Key, ".") {
			attr.Key = attr.Key[1:]
		} else if attr.Key != "*" {
			attr.Key = "attributes." + attr.Key
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prepends the spec of the * attr, if any, to every
// attr in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
	return nil
}

func (a *AttrList) Type() string {
	return "list"
}

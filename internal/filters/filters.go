// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"math/big"
	"os"
	"regexp"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/seqctl/internal/attrs"
	"github.com/staranto/seqctl/internal/driller"
)

// DelimEnv overrides the "," separating filter expressions.
const DelimEnv = "SEQCTL_FILTER_DELIM"

// filterRegex splits an expression into key, operand and target. Operands are
// one of = ^ ~ < > @ or /, optionally negated with a leading !.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>@/])(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

func (f Filter) String() string {
	neg := ""
	if f.Negate {
		neg = "!"
	}
	return f.Key + neg + f.Operand + f.Target
}

// BuildFilters parses spec into filters. Malformed expressions are logged and
// skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv(DelimEnv); ok && d != "" {
		delim = d
	}

	for _, expr := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(expr)
		if parts == nil || parts[1] == "" {
			log.Errorf("invalid filter: %s", expr)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		filters = append(filters, Filter{
			Key:     strings.TrimSpace(parts[1]),
			Negate:  negate,
			Operand: strings.TrimPrefix(operand, "!"),
			Target:  parts[3],
		})
	}

	return filters
}

// FilterDataset keeps the candidates matching every filter in spec and
// projects each onto attrs, keyed by OutputKey. Values are not transformed
// here.
func FilterDataset(candidates gjson.Result, attrs attrs.AttrList, spec string) []map[string]interface{} {
	//nolint:prealloc
	var rows []map[string]interface{}

	filters := BuildFilters(spec)

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, attrs, filters) {
			continue
		}

		row := make(map[string]interface{}, len(attrs))
		for _, attr := range attrs {
			if attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = driller.Driller(candidate.Raw, attr.Key).Value()
		}
		rows = append(rows, row)
	}

	return rows
}

// applyFilters reports whether candidate satisfies all filters. A filter whose
// key names no attr is reported and ignored.
func applyFilters(candidate gjson.Result, attrs attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key := ""
		for _, attr := range attrs {
			if attr.OutputKey == filter.Key {
				key = attr.Key
				break
			}
		}

		if key == "" {
			log.Warnf("filter key not found: %s", filter.Key)
			continue
		}

		value := driller.Driller(candidate.Raw, key).Value()
		if value == nil {
			return false
		}

		var ok bool
		switch v := value.(type) {
		case string:
			if n, isInt := new(big.Int).SetString(v, 10); isInt && isNumericOperand(filter.Operand) {
				ok = checkIntegerOperand(n, filter)
			} else {
				ok = checkStringOperand(v, filter)
			}
		case bool:
			ok = checkStringOperand(fmt.Sprintf("%v", v), filter)
		case float64:
			ok = checkNumericOperand(v, filter)
		default:
			if filter.Operand == "@" {
				ok = checkContainsOperand(value, filter)
			} else {
				log.Debugf("filter %s does not apply to %T, ignoring", filter, value)
				ok = true
			}
		}

		if !ok {
			return false
		}
	}

	return true
}

func isNumericOperand(op string) bool {
	return op == "=" || op == "<" || op == ">"
}

// checkContainsOperand handles @ against arrays and objects.
func checkContainsOperand(value interface{}, filter Filter) bool {
	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if fmt.Sprintf("%v", item) == filter.Target {
				return !filter.Negate
			}
		}
		return filter.Negate
	case map[string]any:
		_, found := val[filter.Target]
		return found == !filter.Negate
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}
}

// checkIntegerOperand compares arbitrary precision integers. Decimal values
// in term output are strings, so this is what makes value>1000 numeric.
func checkIntegerOperand(value *big.Int, filter Filter) bool {
	tgt, ok := new(big.Int).SetString(strings.TrimSpace(filter.Target), 10)
	if !ok {
		return checkStringOperand(value.String(), filter)
	}
	return compare(value.Cmp(tgt), filter)
}

// checkNumericOperand compares a JSON number against the target.
func checkNumericOperand(value float64, filter Filter) bool {
	if !isNumericOperand(filter.Operand) {
		return checkStringOperand(fmt.Sprintf("%v", value), filter)
	}

	tgt, ok := new(big.Float).SetString(strings.TrimSpace(filter.Target))
	if !ok {
		log.Errorf("invalid numeric target: %s", filter.Target)
		return false
	}
	return compare(big.NewFloat(value).Cmp(tgt), filter)
}

func compare(cmp int, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return (cmp == 0) == !filter.Negate
	case ">":
		return (cmp > 0) == !filter.Negate
	case "<":
		return (cmp < 0) == !filter.Negate
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
}

// checkStringOperand applies filter to a string value.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return (value == filter.Target) == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Target) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Target) == !filter.Negate
	case ">":
		return (value > filter.Target) == !filter.Negate
	case "<":
		return (value < filter.Target) == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Target) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Target, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Target)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}

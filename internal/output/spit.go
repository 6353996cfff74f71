// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/seqctl/internal/attrs"
	"github.com/staranto/seqctl/internal/config"
	"github.com/staranto/seqctl/internal/filters"
)

// Options are the rendering choices made by the common output flags.
type Options struct {
	Output string
	Filter string
	Sort   string
	Color  bool
	Titles bool
}

// OptionsFromCommand reads Options from cmd's common output flags.
func OptionsFromCommand(cmd *cli.Command) Options {
	return Options{
		Output: cmd.String("output"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Color:  cmd.Bool("color"),
		Titles: cmd.Bool("titles"),
	}
}

// SliceDiceSpit renders the JSON:API document in raw. parent selects the
// resource array, normally "data". Rows are filtered, sorted, transformed per
// attr and written to w in the requested format.
func SliceDiceSpit(raw bytes.Buffer, attrs attrs.AttrList, opts Options, parent string, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Output == "raw" {
		_, err := w.Write(raw.Bytes())
		return err
	}

	dataset := gjson.Parse(raw.String())
	if parent != "" {
		dataset = dataset.Get(parent)
	}

	rows := filters.FilterDataset(dataset, attrs, opts.Filter)
	log.Debugf("%d rows after filter %q", len(rows), opts.Filter)

	// Sort before transforming so commas and truncation don't change the
	// order.
	SortDataset(rows, opts.Sort)

	for _, row := range rows {
		for i := range attrs {
			if attrs[i].TransformSpec != "" {
				row[attrs[i].OutputKey] = attrs[i].Transform(row[attrs[i].OutputKey])
			}
		}
	}

	switch opts.Output {
	case "json":
		out, err := json.Marshal(included(rows, attrs))
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		out, err := yaml.Marshal(included(rows, attrs))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "", "text":
		TableWriter(rows, attrs, opts, w)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", opts.Output)
	}
}

// included drops the attrs that only exist for filtering and sorting.
func included(rows []map[string]interface{}, attrs attrs.AttrList) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		r := make(map[string]interface{}, len(row))
		for _, attr := range attrs {
			if attr.Include {
				r[attr.OutputKey] = row[attr.OutputKey]
			}
		}
		out = append(out, r)
	}
	return out
}

// TableWriter renders rows as a borderless table honoring color, titles and
// the configured padding.
func TableWriter(rows []map[string]interface{}, attrs attrs.AttrList, opts Options, w io.Writer) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")
		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 2)

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cell := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			if attr.Include {
				cell = append(cell, InterfaceToString(row[attr.OutputKey], "-"))
			}
		}
		cells = append(cells, cell)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(pad)
			}
			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		var headers []string
		for _, attr := range attrs {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}

	fmt.Fprintln(w, t)
}

// getColors returns the configured title, even and odd row colors.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(key+".title", "#f6be00")
	even, _ = config.GetString(key+".even", "#ffffff")
	odd, _ = config.GetString(key+".odd", "#00c8f0")
	return
}

// InterfaceToString renders a row value for the text table. Only nil and the
// empty string count as empty, so index 0 and value "0" still print.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	empty := ""
	if len(emptyValue) > 0 {
		empty = emptyValue[0]
	}

	if value == nil {
		return empty
	}

	switch v := value.(type) {
	case string:
		if v == "" {
			return empty
		}
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	}

	if rv := reflect.ValueOf(value); (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map) && rv.IsNil() {
		return empty
	}

	out, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(out)
}

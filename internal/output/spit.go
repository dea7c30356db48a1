// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"sort"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/sshcfg/sshcfg/internal/config"
)

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Spit renders one resolved host's settings according to command flags.
// Output is written to w. If w is nil, os.Stdout is used.
func Spit(settings map[string]interface{}, cmd *cli.Command, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	// A query bypasses the output format entirely. We render to JSON and let
	// gjson pull out the requested path.
	if query := cmd.String("query"); query != "" {
		jsonBytes, err := json.Marshal(settings)
		if err != nil {
			log.Errorf("Spit query marshal: %v", err)
			return
		}
		fmt.Fprintln(w, gjson.GetBytes(jsonBytes, query).String())
		return
	}

	switch cmd.String("output") {
	case "raw":
		// Raw mimics `ssh -G` output. Multi-valued keywords repeat the
		// keyword, one line per value.
		for _, row := range settingRows(settings) {
			fmt.Fprintf(w, "%s %s\n", row[0], row[1])
		}
	case "json":
		jsonBytes, err := json.Marshal(settings)
		if err != nil {
			log.Errorf("Spit json marshal: %v", err)
			return
		}
		fmt.Fprintln(w, string(jsonBytes))
	case "yaml":
		yamlBytes, err := yaml.Marshal(settings)
		if err != nil {
			log.Errorf("Spit yaml marshal: %v", err)
			return
		}
		_, _ = w.Write(yamlBytes)
	default:
		TableWriter([]string{"keyword", "value"}, settingRows(settings), cmd, w)
	}
}

// SpitDataset renders a multi-row result set, one map per row, with the given
// column order. Rows are sorted per the --sort flag before rendering.
func SpitDataset(dataset []map[string]interface{},
	columns []string,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	SortDataset(dataset, cmd.String("sort"))

	if query := cmd.String("query"); query != "" {
		jsonBytes, err := json.Marshal(dataset)
		if err != nil {
			log.Errorf("SpitDataset query marshal: %v", err)
			return
		}
		fmt.Fprintln(w, gjson.GetBytes(jsonBytes, query).String())
		return
	}

	switch cmd.String("output") {
	case "raw":
		for _, row := range dataset {
			fmt.Fprintln(w, InterfaceToString(row[columns[0]]))
		}
	case "json":
		jsonBytes, err := json.Marshal(dataset)
		if err != nil {
			log.Errorf("SpitDataset json marshal: %v", err)
			return
		}
		fmt.Fprintln(w, string(jsonBytes))
	case "yaml":
		yamlBytes, err := yaml.Marshal(dataset)
		if err != nil {
			log.Errorf("SpitDataset yaml marshal: %v", err)
			return
		}
		_, _ = w.Write(yamlBytes)
	default:
		var rows [][]string
		for _, result := range dataset {
			row := make([]string, 0, len(columns))
			for _, col := range columns {
				row = append(row, InterfaceToString(result[col], "-"))
			}
			rows = append(rows, row)
		}
		TableWriter(columns, rows, cmd, w)
	}
}

// settingRows flattens a settings map into sorted keyword/value pairs.
// Slice values expand to one row per entry, preserving entry order.
func settingRows(settings map[string]interface{}) [][]string {
	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var rows [][]string
	for _, key := range keys {
		switch value := settings[key].(type) {
		case []string:
			for _, v := range value {
				rows = append(rows, []string{key, v})
			}
		default:
			rows = append(rows, []string{key, InterfaceToString(value)})
		}
	}
	return rows
}

// TableWriter renders rows in tabular form honoring color, titles and
// padding options. Output is written to w. If w is nil, os.Stdout is used.
func TableWriter(headers []string, rows [][]string, cmd *cli.Command, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	// We return early if there are no results to display.
	if len(rows) == 0 {
		return
	}

	// We initialize the table styles.
	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	// And then color styles if --color is present. Color is suppressed when
	// stdout is not a terminal so piped output stays clean.
	if cmd.Bool("color") && term.IsTerminal(int(os.Stdout.Fd())) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	// We render the header if present.
	if cmd.Metadata["header"] != nil {
		fmt.Fprintln(w, headerStyle.Render(cmd.Metadata["header"].(string)))
	}

	// We configure the table with padding and styles.
	pad := cmd.Int("padding")
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
		Rows(rows...)

	// We add column headers if titles are enabled.
	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	// We render the footer if present.
	if cmd.Metadata["footer"] != nil {
		fmt.Fprintln(w, headerStyle.Render(cmd.Metadata["footer"].(string)))
	}
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme. If not found, pick a
	// reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}

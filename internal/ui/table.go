// Package ui provides user interface utilities for quartainer.
package ui

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// PrintTable prints a formatted table with headers and rows using text/tabwriter.
// Headers and rows are printed with tab separators for automatic column alignment.
func PrintTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Print headers
	if len(headers) > 0 {
		for i, h := range headers {
			fmt.Fprint(tw, h)
			if i < len(headers)-1 {
				fmt.Fprint(tw, "\t")
			}
		}
		fmt.Fprintln(tw)
	}

	// Print rows
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprint(tw, cell)
			if i < len(row)-1 {
				fmt.Fprint(tw, "\t")
			}
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

// PrintKeyValues prints a two-column key/value summary table.
// Empty values are rendered as "(none)" so the summary always shows every key.
func PrintKeyValues(w io.Writer, pairs [][2]string) error {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		value := p[1]
		if value == "" {
			value = "(none)"
		}
		rows = append(rows, []string{p[0], value})
	}
	return PrintTable(w, nil, rows)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pamolchanov/pamolchanov.github.io/internal/publications"
	"github.com/pamolchanov/pamolchanov.github.io/internal/scholar"
)

// renderSummary tabulates what the fetch returned and what the merge did
// with it.
func renderSummary(res scholar.ScrapeResult, s publications.Summary) string {
	rows := [][]string{
		{"Listed on profile", strconv.Itoa(res.Listed)},
		{"Failed to fetch", strconv.Itoa(res.Failed)},
		{"Discarded (no title)", strconv.Itoa(res.Discarded)},
		{"Updated", strconv.Itoa(s.Updated)},
		{"New", strconv.Itoa(s.Added)},
		{"Preserved", strconv.Itoa(s.Preserved)},
		{"Total", strconv.Itoa(s.Total())},
	}
	return renderTable([]string{"Publications", "Count"}, rows)
}

// renderTable draws rows under headers with the last column right-aligned.
func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: columns, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

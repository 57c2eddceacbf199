package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the loaded layer
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for i, c := range cols {
		w := min(len(c)+2, maxColW)
		if i == 0 {
			w = 36
		}
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(tcols))
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// bboxColumn titles the per-feature envelope column.
const bboxColumn = "bbox"

// buildAttributes returns one row per feature of the current layer: its
// envelope followed by the union of property keys. A property that shares the
// envelope column's title is listed as "properties.<key>".
func (m *Model) buildAttributes() ([]string, [][]string) {
	fs := m.layer.Features
	if len(fs) == 0 {
		return nil, nil
	}
	seen := map[string]bool{}
	var keys []string
	for _, f := range fs {
		for k := range f.Properties {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	cols := make([]string, 0, len(keys)+1)
	cols = append(cols, bboxColumn)
	for _, k := range keys {
		if k == bboxColumn {
			k = "properties." + k
		}
		cols = append(cols, k)
	}
	rows := make([][]string, 0, len(fs))
	for _, f := range fs {
		vals := make([]string, 0, len(cols))
		vals = append(vals, f.Envelope.String())
		for _, k := range keys {
			vals = append(vals, formatValue(f.Properties[k]))
		}
		rows = append(rows, vals)
	}
	return cols, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	}
	bs, _ := json.Marshal(v)
	return string(bs)
}

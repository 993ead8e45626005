package core

// csv.go renders the current view as CSV text for export.
//
// The escaping is written out by hand rather than through encoding/csv:
// the export contract is that a cell is quoted if and only if it contains
// a comma, quote, or newline, and encoding/csv additionally quotes fields
// with leading spaces and forces a trailing newline.

import "strings"

// RenderCSV renders a header row plus one row per record, rows joined by
// newline with no trailing terminator. Cells that need quoting are wrapped
// in double quotes with internal quotes doubled.
func RenderCSV(columns []string, rows [][]string) string {
	var b strings.Builder

	writeRow(&b, columns)
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(&b, row)
	}

	return b.String()
}

// ExportColumns is the column set for a view export: the built-in display
// columns followed by the selected custom-field columns.
func ExportColumns(cfCols []string) []string {
	columns := []string{"Title", "Status", "Severity"}
	return append(columns, cfCols...)
}

// ExportRows renders the view's records into cells matching ExportColumns.
// A missing custom-field entry renders as the empty string, not a dash;
// dash substitution is a table-display decision, not an export one.
func ExportRows(view []Risk, cfCols []string) [][]string {
	rows := make([][]string, 0, len(view))
	for _, r := range view {
		row := make([]string, 0, 3+len(cfCols))
		row = append(row, r.Title, r.Status, r.Severity)
		for _, key := range cfCols {
			cell := ""
			if entry, ok := r.CFMap[key]; ok {
				cell = displayString(entry.Raw)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(csvEscape(cell))
	}
}

// csvEscape quotes a cell if and only if it contains a comma, a double
// quote, or a newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

package core

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderCSV_Quoting(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{
			name: "plain cell is not quoted",
			cell: "plain",
			want: "plain",
		},
		{
			name: "leading space is not quoted",
			cell: " padded",
			want: " padded",
		},
		{
			name: "comma forces quoting",
			cell: "a,b",
			want: `"a,b"`,
		},
		{
			name: "quote forces quoting and doubling",
			cell: `say "hi"`,
			want: `"say ""hi"""`,
		},
		{
			name: "newline forces quoting",
			cell: "line1\nline2",
			want: "\"line1\nline2\"",
		},
		{
			name: "empty cell stays empty",
			cell: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderCSV([]string{"col"}, [][]string{{tt.cell}})
			want := "col\n" + tt.want
			if got != want {
				t.Errorf("RenderCSV() = %q, want %q", got, want)
			}
		})
	}
}

func TestRenderCSV_RoundTrip(t *testing.T) {
	columns := []string{"Title", "Status", "Notes"}
	rows := [][]string{
		{"Vendor, outage", "OPEN", `vendor said "fixed"`},
		{"Multi\nline", "CLOSED", ""},
	}

	out := RenderCSV(columns, rows)

	if strings.HasSuffix(out, "\n") {
		t.Error("RenderCSV() has trailing newline, want none")
	}

	// Re-parse with RFC4180-style parsing and expect the originals back.
	reader := csv.NewReader(strings.NewReader(out))
	parsed, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("re-parsing rendered CSV: %v", err)
	}

	want := append([][]string{columns}, rows...)
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExportRows(t *testing.T) {
	n := 4.0
	view := []Risk{
		{
			Title:    "First",
			Status:   "OPEN",
			Severity: "HIGH",
			CFMap: CustomFieldMap{
				"Likelihood": {Raw: "4", Num: &n},
			},
		},
		{
			Title:    "Second",
			Status:   "—",
			Severity: "—",
			CFMap:    CustomFieldMap{},
		},
	}

	columns := ExportColumns([]string{"Likelihood"})
	wantCols := []string{"Title", "Status", "Severity", "Likelihood"}
	if diff := cmp.Diff(wantCols, columns); diff != "" {
		t.Errorf("ExportColumns() mismatch (-want +got):\n%s", diff)
	}

	rows := ExportRows(view, []string{"Likelihood"})
	want := [][]string{
		{"First", "OPEN", "HIGH", "4"},
		{"Second", "—", "—", ""},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("ExportRows() mismatch (-want +got):\n%s", diff)
	}
}

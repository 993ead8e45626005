package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func numEntry(raw any, n float64) CustomFieldEntry {
	return CustomFieldEntry{Raw: raw, Num: &n}
}

func strEntry(raw any) CustomFieldEntry {
	return CustomFieldEntry{Raw: raw}
}

func titlesOf(view []Risk) []string {
	titles := make([]string, 0, len(view))
	for _, r := range view {
		titles = append(titles, r.Title)
	}
	return titles
}

func TestApplyQuery_Filter(t *testing.T) {
	risks := []Risk{
		{Title: "a", CFMap: CustomFieldMap{"Team": strEntry("Platform")}},
		{Title: "b", CFMap: CustomFieldMap{"Team": strEntry("Security")}},
		{Title: "c", CFMap: CustomFieldMap{}}, // lacks the field entirely
		{Title: "d", CFMap: CustomFieldMap{"Team": strEntry("platform eng")}},
	}

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{
			name: "case-folded substring match",
			q:    Query{FilterKey: "Team", FilterSubstring: "PLAT"},
			want: []string{"a", "d"},
		},
		{
			name: "records lacking the field are excluded",
			q:    Query{FilterKey: "Team", FilterSubstring: "e"},
			want: []string{"b", "d"},
		},
		{
			name: "no filter key means no filtering",
			q:    Query{FilterSubstring: "plat"},
			want: []string{"a", "b", "c", "d"},
		},
		{
			name: "empty substring means no filtering",
			q:    Query{FilterKey: "Team"},
			want: []string{"a", "b", "c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titlesOf(ApplyQuery(risks, tt.q))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("view mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyQuery_SortNumeric(t *testing.T) {
	risks := []Risk{
		{Title: "ten", CFMap: CustomFieldMap{"Score": numEntry("10", 10)}},
		{Title: "two", CFMap: CustomFieldMap{"Score": numEntry("2", 2)}},
		{Title: "thirty", CFMap: CustomFieldMap{"Score": numEntry("(30)", -30)}},
	}

	asc := titlesOf(ApplyQuery(risks, Query{SortKey: "Score", SortDir: SortAscending}))
	if diff := cmp.Diff([]string{"thirty", "two", "ten"}, asc); diff != "" {
		t.Errorf("asc mismatch (-want +got):\n%s", diff)
	}

	desc := titlesOf(ApplyQuery(risks, Query{SortKey: "Score", SortDir: SortDescending}))
	if diff := cmp.Diff([]string{"ten", "two", "thirty"}, desc); diff != "" {
		t.Errorf("desc mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyQuery_SortString(t *testing.T) {
	// String comparison is case-sensitive lexicographic: uppercase sorts
	// before lowercase.
	risks := []Risk{
		{Title: "r1", CFMap: CustomFieldMap{"Tier": strEntry("bronze")}},
		{Title: "r2", CFMap: CustomFieldMap{"Tier": strEntry("Silver")}},
		{Title: "r3", CFMap: CustomFieldMap{"Tier": strEntry("Gold")}},
	}

	asc := titlesOf(ApplyQuery(risks, Query{SortKey: "Tier", SortDir: SortAscending}))
	if diff := cmp.Diff([]string{"r3", "r2", "r1"}, asc); diff != "" {
		t.Errorf("asc mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyQuery_SortDates(t *testing.T) {
	risks := []Risk{
		{Title: "newest", CFMap: CustomFieldMap{"Reviewed": strEntry("2026-02-01")}},
		{Title: "oldest", CFMap: CustomFieldMap{"Reviewed": strEntry("2024-12-31")}},
		{Title: "middle", CFMap: CustomFieldMap{"Reviewed": strEntry("2025-06-15")}},
	}

	asc := titlesOf(ApplyQuery(risks, Query{SortKey: "Reviewed", SortDir: SortAscending}))
	if diff := cmp.Diff([]string{"oldest", "middle", "newest"}, asc); diff != "" {
		t.Errorf("asc mismatch (-want +got):\n%s", diff)
	}

	desc := titlesOf(ApplyQuery(risks, Query{SortKey: "Reviewed", SortDir: SortDescending}))
	if diff := cmp.Diff([]string{"newest", "middle", "oldest"}, desc); diff != "" {
		t.Errorf("desc mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyQuery_PresenceOrdering(t *testing.T) {
	risks := []Risk{
		{Title: "missing", CFMap: CustomFieldMap{}},
		{Title: "present", CFMap: CustomFieldMap{"Score": numEntry("5", 5)}},
		{Title: "blank", CFMap: CustomFieldMap{"Score": strEntry("  ")}},
	}

	// A record with a value sorts before one without, under both directions.
	for _, dir := range []SortDirection{SortAscending, SortDescending} {
		got := titlesOf(ApplyQuery(risks, Query{SortKey: "Score", SortDir: dir}))
		if got[0] != "present" {
			t.Errorf("dir=%s: first = %q, want %q", dir, got[0], "present")
		}
	}
}

func TestApplyQuery_SortStability(t *testing.T) {
	risks := []Risk{
		{ID: "1", Title: "equal", Status: "OPEN"},
		{ID: "2", Title: "equal", Status: "OPEN"},
		{ID: "3", Title: "aaa", Status: "OPEN"},
		{ID: "4", Title: "equal", Status: "OPEN"},
	}

	for _, dir := range []SortDirection{SortAscending, SortDescending} {
		got := ApplyQuery(risks, Query{SortKey: SortKeyTitle, SortDir: dir})

		var equalIDs []any
		for _, r := range got {
			if r.Title == "equal" {
				equalIDs = append(equalIDs, r.ID)
			}
		}
		if diff := cmp.Diff([]any{"1", "2", "4"}, equalIDs); diff != "" {
			t.Errorf("dir=%s: equal-key order changed (-want +got):\n%s", dir, diff)
		}
	}
}

func TestApplyQuery_BuiltinKeys(t *testing.T) {
	risks := []Risk{
		{Title: "b", Status: "OPEN", Severity: "9"},
		{Title: "a", Status: "CLOSED", Severity: "10"},
	}

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{
			name: "title",
			q:    Query{SortKey: SortKeyTitle, SortDir: SortAscending},
			want: []string{"a", "b"},
		},
		{
			name: "status",
			q:    Query{SortKey: SortKeyStatus, SortDir: SortAscending},
			want: []string{"a", "b"},
		},
		{
			// Built-in keys are never numeric: "10" < "9" as strings.
			name: "severity compares as string",
			q:    Query{SortKey: SortKeySeverity, SortDir: SortAscending},
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titlesOf(ApplyQuery(risks, tt.q))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("view mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyQuery_DoesNotMutateInput(t *testing.T) {
	risks := []Risk{
		{Title: "z", CFMap: CustomFieldMap{"Score": numEntry("2", 2)}},
		{Title: "a", CFMap: CustomFieldMap{"Score": numEntry("1", 1)}},
	}
	snapshot := []Risk{
		{Title: "z", CFMap: CustomFieldMap{"Score": numEntry("2", 2)}},
		{Title: "a", CFMap: CustomFieldMap{"Score": numEntry("1", 1)}},
	}

	view := ApplyQuery(risks, Query{SortKey: "Score", SortDir: SortAscending})

	if view[0].Title != "a" {
		t.Errorf("view[0].Title = %q, want %q", view[0].Title, "a")
	}
	if diff := cmp.Diff(snapshot, risks); diff != "" {
		t.Errorf("input mutated by ApplyQuery (-want +got):\n%s", diff)
	}
}

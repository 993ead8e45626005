package core

// query.go is the engine behind the dashboard table: given the normalized
// dataset and the current control state, produce the view the table renders
// and the CSV exporter serializes. Pure throughout — the input dataset is
// never mutated, a new view comes back every time.

import (
	"sort"
	"strings"
	"time"
)

// Built-in sort keys. Any other non-empty sort key resolves through the
// custom-field map.
const (
	SortKeyTitle    = "__title"
	SortKeyStatus   = "__status"
	SortKeySeverity = "__severity"
)

// SortDirection scales comparisons; anything but "desc" means ascending.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Query is the control state for one view: constructed fresh per render,
// never mutated, only replaced.
type Query struct {
	SortKey         string
	SortDir         SortDirection
	FilterKey       string
	FilterSubstring string
}

// ApplyQuery produces the filtered, sorted view of the dataset.
//
// Filtering keeps records whose entry for the filter key exists and whose
// raw value contains the substring, both case-folded; records lacking the
// field are excluded. No filter key or an empty substring means no
// filtering.
//
// Sorting is stable (equal keys keep their input order) and compares by,
// in order: presence (present sorts first regardless of direction), numeric
// value when both sides are numeric, chronological order when both sides
// parse as dates, else case-sensitive lexicographic order — the latter
// three scaled by direction.
func ApplyQuery(risks []Risk, q Query) []Risk {
	view := make([]Risk, 0, len(risks))
	for _, r := range risks {
		if matchesFilter(r, q) {
			view = append(view, r)
		}
	}

	if q.SortKey != "" {
		dir := 1
		if q.SortDir == SortDescending {
			dir = -1
		}
		sort.SliceStable(view, func(i, j int) bool {
			return compareRisks(view[i], view[j], q.SortKey, dir) < 0
		})
	}

	return view
}

func matchesFilter(r Risk, q Query) bool {
	if q.FilterKey == "" || q.FilterSubstring == "" {
		return true
	}
	entry, ok := r.CFMap[q.FilterKey]
	if !ok {
		return false
	}
	raw := strings.ToLower(displayString(entry.Raw))
	return strings.Contains(raw, strings.ToLower(q.FilterSubstring))
}

// sortValue is a record's resolved value for one sort key. Built-in keys
// are always string-typed; custom-field keys are numeric when coercion
// succeeded for that entry.
type sortValue struct {
	str     string
	num     float64
	isNum   bool
	present bool
}

func sortValueFor(r Risk, key string) sortValue {
	switch key {
	case "", SortKeyTitle:
		return stringSortValue(r.Title)
	case SortKeyStatus:
		return stringSortValue(r.Status)
	case SortKeySeverity:
		return stringSortValue(r.Severity)
	}

	entry, ok := r.CFMap[key]
	if !ok {
		return sortValue{}
	}
	if entry.Num != nil {
		return sortValue{
			str:     displayString(entry.Raw),
			num:     *entry.Num,
			isNum:   true,
			present: true,
		}
	}
	return stringSortValue(displayString(entry.Raw))
}

func stringSortValue(s string) sortValue {
	return sortValue{str: s, present: strings.TrimSpace(s) != ""}
}

// compareRisks orders two records for a sort key. Presence wins before any
// typed comparison and is not scaled by direction: a record with a value
// always sorts ahead of one without, ascending or descending.
func compareRisks(a, b Risk, key string, dir int) int {
	av := sortValueFor(a, key)
	bv := sortValueFor(b, key)

	switch {
	case av.present && !bv.present:
		return -1
	case !av.present && bv.present:
		return 1
	case !av.present && !bv.present:
		return 0
	}

	if av.isNum && bv.isNum {
		switch {
		case av.num < bv.num:
			return -dir
		case av.num > bv.num:
			return dir
		}
		return 0
	}

	if at, aok := parseSortDate(av.str); aok {
		if bt, bok := parseSortDate(bv.str); bok {
			switch {
			case at.Before(bt):
				return -dir
			case at.After(bt):
				return dir
			}
			return 0
		}
	}

	return strings.Compare(av.str, bv.str) * dir
}

// sortDateLayouts are the date shapes recognized for chronological
// comparison: the API's own timestamps plus the common ways a date lands
// in a free-form custom field.
var sortDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

func parseSortDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range sortDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

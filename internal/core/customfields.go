package core

// customfields.go canonicalizes the heterogeneous custom-field payloads the
// register API returns. The shape of a custom-field record is not fixed
// across API versions, so every concept (identifier, label, value) resolves
// through an explicit ordered list of candidate field names, first match
// wins.

import "sort"

// Candidate field names per concept, evaluated first-match.
var (
	cfIDFields    = []string{"id", "customFieldId", "fieldId", "uuid"}
	cfLabelFields = []string{"name", "label", "fieldName", "key"}
	cfValueFields = []string{"value", "displayValue"}
)

// CustomFieldEntry is one canonical custom-field value: the raw display
// value and, when coercion succeeds, its numeric form. Num is nil (never
// zero) when the raw value is absent or not numeric.
type CustomFieldEntry struct {
	Raw any      `json:"raw"`
	Num *float64 `json:"num"`
}

// CustomFieldMap maps a field key to its entry. Two kinds of key may point
// at logically the same field: a human label and a "cf:<id>" key. The label
// key always wins; the id-derived key is only inserted when nothing else
// claimed it.
type CustomFieldMap map[string]CustomFieldEntry

// DeriveCustomFieldMap converts an upstream custom-field list into a
// CustomFieldMap. Records that are not object-shaped are skipped silently.
func DeriveCustomFieldMap(fields []any) CustomFieldMap {
	m := make(CustomFieldMap)

	for _, f := range fields {
		rec, ok := f.(map[string]any)
		if !ok {
			continue
		}

		id, hasID := firstNonBlank(rec, cfIDFields...)
		label, hasLabel := firstNonBlank(rec, cfLabelFields...)

		value, hasValue := firstPresent(rec, cfValueFields...)
		if !hasValue {
			value = firstScalarValue(rec)
		}

		entry := CustomFieldEntry{Raw: value}
		if n, ok := CoerceNumber(value); ok {
			entry.Num = &n
		}

		key := ""
		switch {
		case hasLabel:
			key = displayString(label)
		case hasID:
			key = "cf:" + displayString(id)
		default:
			// No label and no id: nothing to key the entry under.
			continue
		}
		m[key] = entry

		if hasID {
			idKey := "cf:" + displayString(id)
			if _, exists := m[idKey]; !exists {
				m[idKey] = entry
			}
		}
	}

	return m
}

// firstScalarValue is the documented fallback when no recognized value
// field is present: scan the record's remaining properties in sorted key
// order and take the first scalar-typed one. Identifier, label, and value
// candidate names are excluded from the scan. This is a heuristic — a
// record carrying extra scalar metadata can yield the wrong property — but
// sorted-order scanning at least keeps it deterministic.
func firstScalarValue(rec map[string]any) any {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		if isCandidateField(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if isScalar(rec[k]) {
			return rec[k]
		}
	}
	return nil
}

func isCandidateField(name string) bool {
	for _, k := range cfIDFields {
		if name == k {
			return true
		}
	}
	for _, k := range cfLabelFields {
		if name == k {
			return true
		}
	}
	for _, k := range cfValueFields {
		if name == k {
			return true
		}
	}
	return false
}

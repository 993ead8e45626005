package core

// normalize.go maps one upstream risk object, whose schema varies across
// API versions, into the canonical Risk record. Every canonical field
// resolves through an explicit ordered candidate chain; no property
// scanning happens here.

import "sort"

// DisplayPlaceholder substitutes for title, status, severity, and owner
// when the upstream record carries no usable value. Timestamps never get
// the placeholder; they stay null and the display layer decides.
const DisplayPlaceholder = "—"

// Candidate upstream field names per canonical field, evaluated first-match.
var (
	riskIDFields       = []string{"id", "uuid", "riskId"}
	riskTitleFields    = []string{"title", "currentVersionTitle", "name"}
	riskSeverityFields = []string{"severity", "riskLevel", "score"}
	riskDueDateFields  = []string{"anticipatedCompletionDate", "dueDate", "targetDate"}
)

// Risk is the canonical record derived from a variable upstream schema.
//
// CustomFields preserves the raw upstream list for traceability; CFMap is
// its canonical form; Raw is the full untouched upstream object.
type Risk struct {
	ID           any            `json:"id"`
	Title        string         `json:"title"`
	Status       string         `json:"status"`
	Severity     string         `json:"severity"`
	Owner        string         `json:"owner"`
	DueDate      any            `json:"dueDate"`
	CreatedAt    any            `json:"createdAt"`
	UpdatedAt    any            `json:"updatedAt"`
	CustomFields []any          `json:"customFields"`
	CFMap        CustomFieldMap `json:"cfMap"`
	Raw          map[string]any `json:"raw"`
}

// NormalizeRisk maps one upstream risk object to its canonical form.
// The mapping is deterministic and never mutates the input.
func NormalizeRisk(raw map[string]any) Risk {
	r := Risk{Raw: raw}

	if id, ok := firstPresent(raw, riskIDFields...); ok {
		r.ID = id
	}
	r.Title = displayField(raw, riskTitleFields...)
	r.Status = displayField(raw, "status")
	r.Severity = displayField(raw, riskSeverityFields...)
	r.Owner = resolveOwner(raw)

	if v, ok := firstPresent(raw, riskDueDateFields...); ok {
		r.DueDate = v
	}
	if v, ok := firstPresent(raw, "createdAt"); ok {
		r.CreatedAt = v
	}
	if v, ok := firstPresent(raw, "updatedAt"); ok {
		r.UpdatedAt = v
	}

	r.CustomFields = customFieldList(raw)
	r.CFMap = DeriveCustomFieldMap(r.CustomFields)

	return r
}

// NormalizeRisks maps a whole fetch session's records in order.
func NormalizeRisks(records []map[string]any) []Risk {
	risks := make([]Risk, 0, len(records))
	for _, rec := range records {
		risks = append(risks, NormalizeRisk(rec))
	}
	return risks
}

// CustomFieldKeys returns the sorted, deduplicated set of every CFMap key
// seen across the given risks.
func CustomFieldKeys(risks []Risk) []string {
	seen := make(map[string]struct{})
	for _, r := range risks {
		for k := range r.CFMap {
			seen[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// displayField resolves the first present candidate to its display string,
// falling back to the placeholder.
func displayField(raw map[string]any, keys ...string) string {
	if v, ok := firstPresent(raw, keys...); ok {
		return displayString(v)
	}
	return DisplayPlaceholder
}

// resolveOwner resolves the owner display value: owner.email, owner.name,
// a scalar owner value, then assignee, then the placeholder.
func resolveOwner(raw map[string]any) string {
	if o, ok := raw["owner"]; ok && o != nil {
		if m, ok := o.(map[string]any); ok {
			if s := displayString(m["email"]); s != "" {
				return s
			}
			if s := displayString(m["name"]); s != "" {
				return s
			}
		} else if !isBlank(o) {
			return displayString(o)
		}
	}
	if a, ok := raw["assignee"]; ok && !isBlank(a) {
		return displayString(a)
	}
	return DisplayPlaceholder
}

// customFieldList extracts the raw custom-field list, degrading to an
// empty list when the property is absent or not list-shaped.
func customFieldList(raw map[string]any) []any {
	if cfs, ok := raw["customFields"].([]any); ok {
		return cfs
	}
	return []any{}
}

package web

// handlers_common.go contains shared parsing helpers used across handlers.

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ryanpedersen42/risk-report-generator/internal/core"
)

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseQuery builds the view query from request parameters. sortKey is
// either a built-in key (__title, __status, __severity) or a custom-field
// key; filterKey is always a custom-field key.
func parseQuery(r *http.Request) core.Query {
	q := core.Query{
		SortKey:         r.URL.Query().Get("sortKey"),
		SortDir:         core.SortAscending,
		FilterKey:       r.URL.Query().Get("filterKey"),
		FilterSubstring: r.URL.Query().Get("filterVal"),
	}
	if r.URL.Query().Get("sortDir") == "desc" {
		q.SortDir = core.SortDescending
	}
	return q
}

// splitParam parses a comma-separated query parameter into trimmed,
// non-empty values.
func splitParam(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}

	var vals []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			vals = append(vals, p)
		}
	}
	return vals
}

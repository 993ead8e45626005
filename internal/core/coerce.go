package core

// coerce.go turns loosely-formatted display values into numbers.
//
// Custom-field values come back from the register however a human typed
// them: "$1,234.56", "12%", accounting-style "(500)" for negatives. The
// coercion is best-effort and silent: anything that does not survive
// cleanup is simply not a number.

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// CoerceNumber parses a loosely-formatted display value into a number.
//
// Handles accounting-style parenthesized negatives, currency symbols,
// percent signs, thousands separators, and embedded whitespace. The parse
// is decimal-point only; no locale awareness. Returns ok=false for absent,
// blank, or unparseable input — never an error, never a panic.
func CoerceNumber(v any) (float64, bool) {
	s := strings.TrimSpace(displayString(v))
	if s == "" {
		return 0, false
	}

	// Accounting format: "(123.45)" means negative
	neg := len(s) >= 2 && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if neg {
		s = s[1 : len(s)-1]
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '%' || r == '$' || r == ',':
			return -1
		case unicode.IsSpace(r):
			return -1
		}
		return r
	}, s)

	if !numericRegex.MatchString(cleaned) {
		return 0, false
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

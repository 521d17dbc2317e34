package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Violations maps field name to a short error code. It implements error so
// services can surface field problems without a parallel error type.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func (v Violations) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveInt(field, value string, v Violations) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		v[field] = "must_be_positive_integer"
		return 0
	}
	return n
}

// NonNegativeFloat parses a form value as a float64 >= 0. A parse failure or
// a negative value records a violation and returns 0.
func NonNegativeFloat(field, value string, v Violations) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		v[field] = "must_be_number"
		return 0
	}
	if f < 0 {
		v[field] = "must_be_non_negative"
		return 0
	}
	return f
}

// Message renders a user-facing Spanish summary for form re-renders.
func Message(v Violations) string {
	if v.Empty() {
		return ""
	}
	return fmt.Sprintf("Hay %d campo(s) con errores, por favor revisa el formulario.", len(v))
}

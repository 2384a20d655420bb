package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter operators.
const (
	OpEquals      = "equals"
	OpContains    = "contains"
	OpGreaterThan = "greaterThan"
	OpLessThan    = "lessThan"
)

// Filter is one row predicate. A filter list is evaluated in order with AND
// semantics.
type Filter struct {
	Column string `json:"column" yaml:"column" mapstructure:"column"`
	Op     string `json:"op" yaml:"op" mapstructure:"op"`
	Value  any    `json:"value" yaml:"value" mapstructure:"value"`
}

// ApplyFilters returns the rows for which every filter matches.
//
// Filtering fails closed: an unknown operator, a missing column or a value
// that cannot be parsed for a numeric comparison excludes the row. It never
// returns an error.
func ApplyFilters(records []Record, filters []Filter) []Record {
	if len(filters) == 0 {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if matchesAll(rec, filters) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesAll(rec Record, filters []Filter) bool {
	for _, f := range filters {
		if !f.Matches(rec) {
			return false
		}
	}
	return true
}

// Matches reports whether the record satisfies this single filter.
func (f Filter) Matches(rec Record) bool {
	cell, ok := rec[f.Column]
	if !ok {
		return false
	}
	switch f.Op {
	case OpEquals:
		return stringify(cell) == stringify(f.Value)
	case OpContains:
		return strings.Contains(stringify(cell), stringify(f.Value))
	case OpGreaterThan:
		a, b, ok := numericPair(cell, f.Value)
		return ok && a > b
	case OpLessThan:
		a, b, ok := numericPair(cell, f.Value)
		return ok && a < b
	default:
		return false
	}
}

func numericPair(cell, operand any) (float64, float64, bool) {
	a, okA := toFloat(cell)
	b, okB := toFloat(operand)
	return a, b, okA && okB
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

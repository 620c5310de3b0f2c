package docstore

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Op is a filter comparison operator.
type Op string

const (
	OpEq  Op = "=="
	OpNeq Op = "!="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
)

// Filter is a single field predicate. Filters on a query are applied
// conjunctively, server-side.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Sort orders a query result by one top-level field. A nil sort means
// insertion order (created_at on the SQL backend).
type Sort struct {
	Field string
	Desc  bool
}

// Eq is shorthand for an equality filter.
func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpEq, Value: value}
}

func (o Op) sql() (string, error) {
	switch o {
	case OpEq:
		return "=", nil
	case OpNeq:
		return "<>", nil
	case OpGt, OpGte, OpLt, OpLte:
		return string(o), nil
	default:
		return "", fmt.Errorf("unsupported filter operator %q", o)
	}
}

// compileFilter renders one filter into a SQL predicate against the JSONB
// fields column. Numeric and boolean values are cast so comparisons follow
// value semantics rather than text collation.
func compileFilter(f Filter, argIndex int) (string, interface{}, error) {
	op, err := f.Op.sql()
	if err != nil {
		return "", nil, err
	}
	if err := validFieldName(f.Field); err != nil {
		return "", nil, fmt.Errorf("invalid filter field: %w", err)
	}
	switch v := f.Value.(type) {
	case int:
		return fmt.Sprintf("(fields->>'%s')::numeric %s $%d", f.Field, op, argIndex), v, nil
	case int64:
		return fmt.Sprintf("(fields->>'%s')::numeric %s $%d", f.Field, op, argIndex), v, nil
	case float64:
		return fmt.Sprintf("(fields->>'%s')::numeric %s $%d", f.Field, op, argIndex), v, nil
	case bool:
		return fmt.Sprintf("(fields->>'%s')::boolean %s $%d", f.Field, op, argIndex), v, nil
	case string:
		return fmt.Sprintf("fields->>'%s' %s $%d", f.Field, op, argIndex), v, nil
	case nil:
		if f.Op != OpEq && f.Op != OpNeq {
			return "", nil, fmt.Errorf("nil filter value only supports == / !=")
		}
		if f.Op == OpEq {
			return fmt.Sprintf("fields->>'%s' IS NULL", f.Field), nil, nil
		}
		return fmt.Sprintf("fields->>'%s' IS NOT NULL", f.Field), nil, nil
	default:
		return "", nil, fmt.Errorf("unsupported filter value type %T", f.Value)
	}
}

// validFieldName restricts field names interpolated into SQL to identifier
// characters. Field names reach this code from request query strings.
func validFieldName(s string) error {
	if s == "" {
		return fmt.Errorf("empty field name")
	}
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return fmt.Errorf("field name %q contains %q", s, r)
	}
	return nil
}

// matches applies the filter in Go. Used by the in-memory backend.
func (f Filter) matches(fields map[string]interface{}) bool {
	actual, ok := fields[f.Field]
	if f.Value == nil {
		switch f.Op {
		case OpEq:
			return !ok || actual == nil
		case OpNeq:
			return ok && actual != nil
		default:
			return false
		}
	}
	if !ok {
		return false
	}

	if an, aok := asNumber(actual); aok {
		if bn, bok := asNumber(f.Value); bok {
			return compareOrdered(an, bn, f.Op)
		}
		return false
	}
	switch want := f.Value.(type) {
	case string:
		got, ok := actual.(string)
		if !ok {
			return false
		}
		return compareOrderedStr(got, want, f.Op)
	case bool:
		got, ok := actual.(bool)
		if !ok {
			return false
		}
		switch f.Op {
		case OpEq:
			return got == want
		case OpNeq:
			return got != want
		}
		return false
	default:
		return false
	}
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func compareOrdered(a, b float64, op Op) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNeq:
		return a != b
	case OpGt:
		return a > b
	case OpGte:
		return a >= b
	case OpLt:
		return a < b
	case OpLte:
		return a <= b
	}
	return false
}

func compareOrderedStr(a, b string, op Op) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNeq:
		return a != b
	case OpGt:
		return a > b
	case OpGte:
		return a >= b
	case OpLt:
		return a < b
	case OpLte:
		return a <= b
	}
	return false
}

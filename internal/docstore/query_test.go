package docstore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterMatches(t *testing.T) {
	fields := map[string]interface{}{
		"name":   "Maya",
		"price":  float64(24),
		"count":  json.Number("6"),
		"active": true,
		"note":   nil,
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"string eq", Eq("name", "Maya"), true},
		{"string eq miss", Eq("name", "Leo"), false},
		{"string neq", Filter{Field: "name", Op: OpNeq, Value: "Leo"}, true},
		{"number gt", Filter{Field: "price", Op: OpGt, Value: 20}, true},
		{"number lte", Filter{Field: "price", Op: OpLte, Value: 23.9}, false},
		{"json number eq", Eq("count", 6), true},
		{"bool eq", Eq("active", true), true},
		{"bool neq", Filter{Field: "active", Op: OpNeq, Value: false}, true},
		{"nil eq on null field", Eq("note", nil), true},
		{"nil eq on absent field", Eq("missing", nil), true},
		{"nil neq on absent field", Filter{Field: "missing", Op: OpNeq, Value: nil}, false},
		{"absent field never matches value", Eq("missing", "x"), false},
		{"type mismatch never matches", Eq("name", 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.matches(fields))
		})
	}
}

func TestCompileFilter(t *testing.T) {
	pred, arg, err := compileFilter(Eq("price", 20), 2)
	assert.NoError(t, err)
	assert.Equal(t, "(fields->>'price')::numeric = $2", pred)
	assert.Equal(t, 20, arg)

	pred, arg, err = compileFilter(Filter{Field: "name", Op: OpGte, Value: "m"}, 3)
	assert.NoError(t, err)
	assert.Equal(t, "fields->>'name' >= $3", pred)
	assert.Equal(t, "m", arg)

	_, _, err = compileFilter(Filter{Field: "bad'field", Op: OpEq, Value: 1}, 1)
	assert.Error(t, err, "non-identifier characters must be rejected")

	_, _, err = compileFilter(Filter{Field: "a/b", Op: OpEq, Value: 1}, 1)
	assert.Error(t, err)

	_, _, err = compileFilter(Filter{Field: "x", Op: Op("~"), Value: 1}, 1)
	assert.Error(t, err)
}

// Package filter models the query filter DSL as a closed tagged union.
// Each field maps to exactly one of: an equality match, a numeric range,
// or an identifier match on the reserved companyId field. Anything else
// is rejected at parse time as a client error.
package filter

import (
	"fmt"
	"sort"

	"github.com/jobportal-labs/ragchat/internal/domain"
)

// IdentifierField is the reserved field name whose value must be a
// hex-encoded document identifier.
const IdentifierField = "companyId"

// Recognized range bound operators, in canonical order.
var boundOps = []string{"$gt", "$gte", "$lt", "$lte"}

// Filter is a validated conjunction of per-field conditions.
type Filter struct {
	conditions []Condition
}

// Parse builds a Filter from a raw JSON filter object.
// Fields are processed in sorted order so validation failures are
// deterministic; the first invalid field aborts parsing.
func Parse(raw map[string]any) (Filter, error) {
	if len(raw) == 0 {
		return Filter{}, nil
	}

	fields := make([]string, 0, len(raw))
	for field := range raw {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	conditions := make([]Condition, 0, len(fields))
	for _, field := range fields {
		cond, err := parseField(field, raw[field])
		if err != nil {
			return Filter{}, err
		}
		conditions = append(conditions, cond)
	}

	return Filter{conditions: conditions}, nil
}

func parseField(field string, value any) (Condition, error) {
	if field == IdentifierField {
		id, ok := value.(string)
		if !ok {
			return Condition{}, domain.NewFilterFieldError(field,
				fmt.Sprintf("identifier must be a string, got %T", value))
		}
		return NewIdentifier(field, id)
	}

	if obj, ok := value.(map[string]any); ok {
		r, err := parseBounds(field, obj)
		if err != nil {
			return Condition{}, err
		}
		return NewRange(field, r)
	}

	return NewEquals(field, value)
}

// parseBounds copies only the recognized bound operators out of a range
// object. Unrecognized keys are ignored; an object with no recognized
// bounds is a client error naming the field.
func parseBounds(field string, obj map[string]any) (Range, error) {
	var r Range
	found := false

	for _, op := range boundOps {
		raw, ok := obj[op]
		if !ok {
			continue
		}
		v, ok := toFloat(raw)
		if !ok {
			return Range{}, domain.NewFilterFieldError(field,
				fmt.Sprintf("bound %s must be a number, got %T", op, raw))
		}
		found = true
		switch op {
		case "$gt":
			r.gt = &v
		case "$gte":
			r.gte = &v
		case "$lt":
			r.lt = &v
		case "$lte":
			r.lte = &v
		}
	}

	if !found {
		return Range{}, domain.NewFilterFieldError(field,
			"range must include at least one of $gt, $gte, $lt, $lte")
	}
	return r, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Conditions returns the per-field conditions in sorted field order.
func (f Filter) Conditions() []Condition { return f.conditions }

// IsEmpty reports whether the filter has no conditions.
func (f Filter) IsEmpty() bool { return len(f.conditions) == 0 }

// Condition is a single per-field clause: equality, range, or identifier.
type Condition struct {
	field      string
	equals     any
	rangeExpr  *Range
	identifier string
}

// NewEquals creates an equality condition. Only scalar values are
// accepted; arrays, objects, and null fit no filter variant.
func NewEquals(field string, value any) (Condition, error) {
	if field == "" {
		return Condition{}, domain.NewFilterFieldError(field, "field name is required")
	}
	switch value.(type) {
	case string, bool, float64, float32, int, int64:
	default:
		return Condition{}, domain.NewFilterFieldError(field,
			fmt.Sprintf("equality value must be a scalar, got %T", value))
	}
	return Condition{field: field, equals: value}, nil
}

// NewRange creates a numeric range condition.
func NewRange(field string, r Range) (Condition, error) {
	if field == "" {
		return Condition{}, domain.NewFilterFieldError(field, "field name is required")
	}
	if r.isEmpty() {
		return Condition{}, domain.NewFilterFieldError(field,
			"range must include at least one of $gt, $gte, $lt, $lte")
	}
	return Condition{field: field, rangeExpr: &r}, nil
}

// NewIdentifier creates an identifier condition. The value must be a
// 24-character hex string, the wire form of a document ObjectID.
func NewIdentifier(field, id string) (Condition, error) {
	if field == "" {
		return Condition{}, domain.NewFilterFieldError(field, "field name is required")
	}
	if !isHexID(id) {
		return Condition{}, domain.NewFilterFieldError(field,
			fmt.Sprintf("%q is not a valid identifier", id))
	}
	return Condition{field: field, identifier: id}, nil
}

// Field returns the field name.
func (c Condition) Field() string { return c.field }

// Equals returns the equality value.
func (c Condition) Equals() any { return c.equals }

// Range returns the range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// Identifier returns the hex identifier value.
func (c Condition) Identifier() string { return c.identifier }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.rangeExpr != nil }

// IsIdentifier reports whether this is an identifier condition.
func (c Condition) IsIdentifier() bool { return c.identifier != "" }

// Range holds numeric bounds. Any combination of bounds is allowed as
// long as at least one is present.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewBounds validates and creates a Range.
func NewBounds(gt, gte, lt, lte *float64) (Range, error) {
	r := Range{gt: gt, gte: gte, lt: lt, lte: lte}
	if r.isEmpty() {
		return Range{}, fmt.Errorf("at least one range bound is required")
	}
	return r, nil
}

func (r Range) isEmpty() bool {
	return r.gt == nil && r.gte == nil && r.lt == nil && r.lte == nil
}

// GT returns the exclusive lower bound.
func (r Range) GT() *float64 { return r.gt }

// GTE returns the inclusive lower bound.
func (r Range) GTE() *float64 { return r.gte }

// LT returns the exclusive upper bound.
func (r Range) LT() *float64 { return r.lt }

// LTE returns the inclusive upper bound.
func (r Range) LTE() *float64 { return r.lte }

func isHexID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

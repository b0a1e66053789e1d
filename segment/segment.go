// Package segment implements the read-only Column segment external
// contract (§6): a fixed-length, densely offset-addressed column of
// typed values with nulls, generalized from the row-oriented storage the
// index's host keeps its base tables in.
package segment

import "github.com/Jonas-dot/hyrise/keyspace"

// Segment is one column's storage: size() and value_at(offset), with
// values totally ordered within a type (§6). Implementations are typed
// per primitive so the loader and validator never juggle interface{}.
type Segment interface {
	Size() int
	ValueAt(offset int) (keyspace.Column, bool) // ok=false means null
}

// Int64Segment is a dense []int64 column with a parallel null bitmap.
type Int64Segment struct {
	values []int64
	nulls  []bool
}

func NewInt64Segment(values []int64, nulls []bool) *Int64Segment {
	return &Int64Segment{values: values, nulls: nulls}
}

func (s *Int64Segment) Size() int { return len(s.values) }

func (s *Int64Segment) ValueAt(offset int) (keyspace.Column, bool) {
	if s.nulls != nil && s.nulls[offset] {
		return keyspace.Column{}, false
	}
	return keyspace.Int64Col(s.values[offset]), true
}

// Float64Segment is a dense []float64 column with a parallel null bitmap.
type Float64Segment struct {
	values []float64
	nulls  []bool
}

func NewFloat64Segment(values []float64, nulls []bool) *Float64Segment {
	return &Float64Segment{values: values, nulls: nulls}
}

func (s *Float64Segment) Size() int { return len(s.values) }

func (s *Float64Segment) ValueAt(offset int) (keyspace.Column, bool) {
	if s.nulls != nil && s.nulls[offset] {
		return keyspace.Column{}, false
	}
	return keyspace.Float64Col(s.values[offset]), true
}

// StringSegment is a dense []string column with a parallel presence
// bitmap: an empty string is a valid value, so nullness is tracked
// separately rather than overloaded onto the string itself. Unlike
// Int64Segment/Float64Segment, whose slice marks nulls, this slice marks
// present values (false means null).
type StringSegment struct {
	values  []string
	present []bool
}

func NewStringSegment(values []string, present []bool) *StringSegment {
	return &StringSegment{values: values, present: present}
}

func (s *StringSegment) Size() int { return len(s.values) }

func (s *StringSegment) ValueAt(offset int) (keyspace.Column, bool) {
	if s.present != nil && !s.present[offset] {
		return keyspace.Column{}, false
	}
	return keyspace.StringCol(s.values[offset]), true
}

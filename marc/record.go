// Package marc holds a small in-memory model of MARC21 records, enough to feed
// the authority extractor. Records can be decoded from MARCXML or from the
// ISO 2709 transmission format.
package marc

import "strings"

// Subfield contains a code and a value.
type Subfield struct {
	Code  string
	Value string
}

// Field is either a control field (tag below 010, Value set) or a data field
// with two indicators and a list of subfields.
type Field struct {
	Tag        string
	Indicators string
	Value      string
	Subfields  []Subfield
}

// IsControl returns true for control fields (001-009).
func (f Field) IsControl() bool {
	return f.Tag < "010"
}

// First returns the value of the first subfield with the given code.
func (f Field) First(code string) (string, bool) {
	for _, sf := range f.Subfields {
		if sf.Code == code {
			return sf.Value, true
		}
	}
	return "", false
}

// Values returns all subfield values for a code, in record order.
func (f Field) Values(code string) []string {
	var result []string
	for _, sf := range f.Subfields {
		if sf.Code == code {
			result = append(result, sf.Value)
		}
	}
	return result
}

// Collect returns the values of all given codes, grouped by code in argument
// order, e.g. Collect("a", "b") yields all $a values followed by all $b values.
func (f Field) Collect(codes ...string) []string {
	var result []string
	for _, c := range codes {
		result = append(result, f.Values(c)...)
	}
	return result
}

// Source is the view of a record the resolver works with.
type Source interface {
	Leader() string
	Fields(tag string) []Field
}

// Record is a MARC record with a leader and fields in record order.
type Record struct {
	leader string
	fields []Field
}

// NewRecord creates a record from a leader and fields.
func NewRecord(leader string, fields ...Field) *Record {
	return &Record{leader: leader, fields: fields}
}

// Leader returns the raw 24 byte leader.
func (r *Record) Leader() string {
	return r.leader
}

// Fields returns all fields with the given tag, in record order.
func (r *Record) Fields(tag string) []Field {
	var result []Field
	for _, f := range r.fields {
		if f.Tag == tag {
			result = append(result, f)
		}
	}
	return result
}

// All returns every field of the record.
func (r *Record) All() []Field {
	return r.fields
}

// Add appends fields.
func (r *Record) Add(fields ...Field) {
	r.fields = append(r.fields, fields...)
}

// ControlNumber returns the trimmed value of field 001, or the empty string.
func (r *Record) ControlNumber() string {
	for _, f := range r.fields {
		if f.Tag == "001" {
			return strings.TrimSpace(f.Value)
		}
	}
	return ""
}

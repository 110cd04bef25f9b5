// Package authority reads the descriptive fields of a MARC21 authority record
// into small immutable bundles and classifies the entity a record describes.
//
// See: http://www.loc.gov/marc/authority/ecadlist.html
package authority

import (
	"strings"
	"sync"
	"time"

	"github.com/miku/marc2ld/config"
	"github.com/miku/marc2ld/dateutil"
	"github.com/miku/marc2ld/marc"
	"github.com/miku/marc2ld/normal"
)

// PersonalName is field 100, a personal name or name-title heading.
type PersonalName struct {
	Name  string // $a
	Date  string // $d
	Title string // $t
	Lang  string // $l
	Err   error
}

// CorporateName is field 110, with $a, $b and $c joined by " : ".
type CorporateName struct {
	Name string
	Err  error
}

// MeetingName is field 111, a conference or meeting name.
type MeetingName struct {
	Name string // $a
	Date string // $d
	City string // $c
	Err  error
}

// Heading concatenates name, date and city, the way the catalog displays a
// meeting, e.g. "Joseph Priestley Symposium(1974 :Wilkes-Barre, Pa.)".
func (m MeetingName) Heading() string {
	return m.Name + m.Date + m.City
}

// UniformTitleHeading is field 130.
type UniformTitleHeading struct {
	Title string
	Err   error
}

// GeographicName is field 151, a jurisdiction or geographic name.
type GeographicName struct {
	Name string
	Err  error
}

// Bundles groups the descriptive bundles the classifier looks at.
type Bundles struct {
	Personal  PersonalName
	Corporate CorporateName
	Meeting   MeetingName
	Title     UniformTitleHeading
	Place     GeographicName
}

// Extractor reads bundles from a single record. Every getter computes its
// value once; repeated calls return the identical value.
type Extractor struct {
	rec    marc.Source
	fields config.Fields

	field100 func() PersonalName
	field110 func() CorporateName
	field111 func() MeetingName
	field130 func() UniformTitleHeading
	field151 func() GeographicName
	field008 func() Fixed
}

// NewExtractor wraps a record. The fields config names the identifier tags.
func NewExtractor(rec marc.Source, fields config.Fields) *Extractor {
	e := &Extractor{rec: rec, fields: fields}
	e.field100 = sync.OnceValue(e.parse100)
	e.field110 = sync.OnceValue(e.parse110)
	e.field111 = sync.OnceValue(e.parse111)
	e.field130 = sync.OnceValue(e.parse130)
	e.field151 = sync.OnceValue(e.parse151)
	e.field008 = sync.OnceValue(e.parse008)
	return e
}

// Record returns the wrapped record.
func (e *Extractor) Record() marc.Source {
	return e.rec
}

// Fields returns all fields with a tag.
func (e *Extractor) Fields(tag string) []marc.Field {
	return e.rec.Fields(tag)
}

// RecordID returns the value of the configured id control field (001 by
// default), which is mandatory.
func (e *Extractor) RecordID() (string, error) {
	for _, f := range e.rec.Fields(e.fields.AuthID) {
		if v := strings.TrimSpace(f.Value); v != "" {
			return v, nil
		}
	}
	return "", MissingFieldError{Tag: e.fields.AuthID}
}

// Leader parses the record leader.
func (e *Extractor) Leader() (marc.Leader, error) {
	return marc.ParseLeader(e.rec.Leader())
}

// Modified returns the date and time of latest transaction from field 005.
func (e *Extractor) Modified() (time.Time, error) {
	f, ok := e.first("005")
	if !ok || strings.TrimSpace(f.Value) == "" {
		return time.Time{}, MissingFieldError{Tag: "005"}
	}
	return dateutil.ParseTransaction(f.Value)
}

// Field100 returns the personal name bundle.
func (e *Extractor) Field100() PersonalName { return e.field100() }

// Field110 returns the corporate name bundle.
func (e *Extractor) Field110() CorporateName { return e.field110() }

// Field111 returns the meeting name bundle.
func (e *Extractor) Field111() MeetingName { return e.field111() }

// Field130 returns the uniform title bundle.
func (e *Extractor) Field130() UniformTitleHeading { return e.field130() }

// Field151 returns the geographic name bundle.
func (e *Extractor) Field151() GeographicName { return e.field151() }

// Field008 returns the fixed length data elements.
func (e *Extractor) Field008() Fixed { return e.field008() }

// Bundles returns all descriptive bundles.
func (e *Extractor) Bundles() Bundles {
	return Bundles{
		Personal:  e.Field100(),
		Corporate: e.Field110(),
		Meeting:   e.Field111(),
		Title:     e.Field130(),
		Place:     e.Field151(),
	}
}

// Classify classifies the record.
func (e *Extractor) Classify() EntityType {
	return Classify(e.Bundles())
}

// first returns the first field with a tag.
func (e *Extractor) first(tag string) (marc.Field, bool) {
	fs := e.rec.Fields(tag)
	if len(fs) == 0 {
		return marc.Field{}, false
	}
	return fs[0], true
}

// value returns the normalized first subfield value of a code.
func value(f marc.Field, code string) string {
	v, _ := f.First(code)
	return normal.String(v)
}

func (e *Extractor) parse100() PersonalName {
	f, ok := e.first("100")
	if !ok {
		return PersonalName{Err: &FieldError{Tag: "100", Absent: true}}
	}
	return PersonalName{
		Name:  value(f, "a"),
		Date:  value(f, "d"),
		Title: value(f, "t"),
		Lang:  value(f, "l"),
	}
}

func (e *Extractor) parse110() CorporateName {
	f, ok := e.first("110")
	if !ok {
		return CorporateName{Err: &FieldError{Tag: "110", Absent: true}}
	}
	var parts []string
	for _, v := range f.Collect("a", "b", "c") {
		parts = append(parts, normal.String(v))
	}
	return CorporateName{Name: strings.Join(parts, " : ")}
}

func (e *Extractor) parse111() MeetingName {
	f, ok := e.first("111")
	if !ok {
		return MeetingName{Err: &FieldError{Tag: "111", Absent: true}}
	}
	return MeetingName{
		Name: value(f, "a"),
		Date: value(f, "d"),
		City: value(f, "c"),
	}
}

func (e *Extractor) parse130() UniformTitleHeading {
	f, ok := e.first("130")
	if !ok {
		return UniformTitleHeading{Err: &FieldError{Tag: "130", Absent: true}}
	}
	if _, ok := f.First("a"); !ok {
		return UniformTitleHeading{Err: &FieldError{Tag: "130", Code: "a"}}
	}
	return UniformTitleHeading{Title: value(f, "a")}
}

func (e *Extractor) parse151() GeographicName {
	f, ok := e.first("151")
	if !ok {
		return GeographicName{Err: &FieldError{Tag: "151", Absent: true}}
	}
	if _, ok := f.First("a"); !ok {
		return GeographicName{Err: &FieldError{Tag: "151", Code: "a"}}
	}
	return GeographicName{Name: value(f, "a")}
}

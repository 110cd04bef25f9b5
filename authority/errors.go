package authority

import "fmt"

// MissingFieldError is returned when a mandatory control field is absent or
// empty, e.g. the record id in 001.
type MissingFieldError struct {
	Tag string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing mandatory field %s", e.Tag)
}

// FieldError is attached to a bundle whose field is absent or lacks a
// required subfield. It is never returned from the extractor, so callers can
// tell "absent" from "present but malformed".
type FieldError struct {
	Tag    string
	Code   string // subfield code, empty for control fields
	Absent bool   // the field itself is missing
	Reason string
}

func (e *FieldError) Error() string {
	switch {
	case e.Absent:
		return fmt.Sprintf("field %s: absent", e.Tag)
	case e.Code != "":
		return fmt.Sprintf("field %s: missing subfield $%s", e.Tag, e.Code)
	default:
		return fmt.Sprintf("field %s: %s", e.Tag, e.Reason)
	}
}

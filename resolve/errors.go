package resolve

import (
	"errors"
	"fmt"
)

// Fatal error kinds; Resolve returns them and no graph.
var (
	ErrMissingMandatoryField = errors.New("missing mandatory field")
	ErrLOCResolution         = errors.New("loc resolution failure")
)

// Recoverable error kinds, collected in Result.Warnings.
var (
	ErrUnresolvedIdentity  = errors.New("unresolved identity")
	ErrUnclassifiedEntity  = errors.New("unclassified entity")
	ErrUnimplementedEntity = errors.New("unimplemented entity")
)

// Error ties an error kind and its cause to a record. Both are reachable
// with errors.Is and errors.As.
type Error struct {
	RecordID string
	Kind     error
	Err      error
}

func (e *Error) Error() string {
	id := e.RecordID
	if id == "" {
		id = "-"
	}
	if e.Err == nil {
		return fmt.Sprintf("record %s: %v", id, e.Kind)
	}
	return fmt.Sprintf("record %s: %v: %v", id, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsFatal reports whether err stops the resolution of a record.
func IsFatal(err error) bool {
	return errors.Is(err, ErrMissingMandatoryField) || errors.Is(err, ErrLOCResolution)
}

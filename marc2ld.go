// Package marc2ld turns MARC21 authority records into linked data, resolving
// each heading against LOC, VIAF, ISNI and OCLC.
package marc2ld

const (
	// AppName is used for config and cache locations.
	AppName = "marc2ld"
	// Version of the toolkit.
	Version = "0.3.1"
)

// Package dateutil parses the date representations found in MARC authority
// control fields.
package dateutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseEntered parses the "date entered on file" of field 008, positions
// 00-05, formatted as yymmdd.
func ParseEntered(value string) (time.Time, error) {
	if len(value) < 6 {
		return time.Time{}, fmt.Errorf("date entered on file too short: %q", value)
	}
	return time.Parse("060102", value[:6])
}

// ParseTransaction parses field 005, the date and time of latest transaction,
// e.g. "20150326113052.0", in UTC. The tenths of a second are dropped.
func ParseTransaction(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if i := strings.Index(value, "."); i > 0 {
		value = value[:i]
	}
	return dateparse.ParseIn(value, time.UTC)
}

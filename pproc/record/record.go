// Package record splits MARCXML streams into single records and processes
// them in parallel.
package record

import (
	"bytes"
	"errors"
	"regexp"
)

// ErrIncompleteRecord is returned when the input ends inside a record.
var ErrIncompleteRecord = errors.New("incomplete record at end of input")

// openRecord matches a record start tag, with or without a namespace prefix,
// e.g. <record>, <marc:record xmlns:marc="...">.
var openRecord = regexp.MustCompile(`<([A-Za-z_][\w.-]*:)?record[\s>/]`)

// SplitRecords is a bufio.SplitFunc yielding one MARCXML record element per
// token. Anything between records, like the collection element, is skipped.
// Records do not nest, so the first matching end tag closes a record.
func SplitRecords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	loc := openRecord.FindSubmatchIndex(data)
	if loc == nil {
		if atEOF {
			return len(data), nil, nil
		}
		// Keep a possibly truncated start tag for the next round.
		if i := bytes.LastIndexByte(data, '<'); i >= 0 {
			return i, nil, nil
		}
		return len(data), nil, nil
	}
	start := loc[0]
	gt := bytes.IndexByte(data[loc[1]-1:], '>')
	if gt == -1 {
		if atEOF {
			return len(data), nil, ErrIncompleteRecord
		}
		return start, nil, nil
	}
	if tagEnd := loc[1] - 1 + gt; data[tagEnd-1] == '/' {
		// Skip empty elements, like <record/> or <record id="1" />.
		return tagEnd + 1, nil, nil
	}
	var prefix []byte
	if loc[2] >= 0 {
		prefix = data[loc[2]:loc[3]]
	}
	closeTag := append(append([]byte("</"), prefix...), "record>"...)
	end := bytes.Index(data[start:], closeTag)
	if end == -1 {
		if atEOF {
			return len(data), nil, ErrIncompleteRecord
		}
		return start, nil, nil
	}
	end += start + len(closeTag)
	return end, data[start:end], nil
}

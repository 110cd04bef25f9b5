package marc

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

const (
	recordTerminator  = 0x1d
	fieldTerminator   = 0x1e
	subfieldDelimiter = 0x1f
	directoryEntry    = 12
)

// ErrInvalidRecord signals a malformed ISO 2709 record.
var ErrInvalidRecord = errors.New("invalid marc record")

// DecodeBinary parses a single record in MARC21 transmission format (ISO
// 2709): leader, directory, then field data addressed by the directory.
func DecodeBinary(data []byte) (*Record, error) {
	if len(data) < LeaderLength+1 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidRecord, len(data))
	}
	base, err := strconv.Atoi(string(data[12:17]))
	if err != nil {
		return nil, fmt.Errorf("%w: base address %q", ErrInvalidRecord, data[12:17])
	}
	if base <= LeaderLength || base > len(data) {
		return nil, fmt.Errorf("%w: base address %d out of range", ErrInvalidRecord, base)
	}
	directory := data[LeaderLength : base-1]
	if len(directory)%directoryEntry != 0 {
		return nil, fmt.Errorf("%w: directory length %d", ErrInvalidRecord, len(directory))
	}
	rec := &Record{leader: string(data[:LeaderLength])}
	for o := 0; o < len(directory); o += directoryEntry {
		entry := directory[o : o+directoryEntry]
		tag := string(entry[0:3])
		length, err := strconv.Atoi(string(entry[3:7]))
		if err != nil {
			return nil, fmt.Errorf("%w: field length for %s", ErrInvalidRecord, tag)
		}
		offset, err := strconv.Atoi(string(entry[7:12]))
		if err != nil {
			return nil, fmt.Errorf("%w: field offset for %s", ErrInvalidRecord, tag)
		}
		start, end := base+offset, base+offset+length
		if length <= 0 || offset < 0 || start < base || end > len(data) {
			return nil, fmt.Errorf("%w: field %s out of range", ErrInvalidRecord, tag)
		}
		rec.fields = append(rec.fields, decodeField(tag, bytes.TrimSuffix(data[start:end], []byte{fieldTerminator})))
	}
	return rec, nil
}

func decodeField(tag string, b []byte) Field {
	f := Field{Tag: tag}
	if f.IsControl() {
		f.Value = string(b)
		return f
	}
	parts := bytes.Split(b, []byte{subfieldDelimiter})
	switch ind := string(parts[0]); len(ind) {
	case 0:
		f.Indicators = "  "
	case 1:
		f.Indicators = ind + " "
	default:
		f.Indicators = ind[:2]
	}
	for _, p := range parts[1:] {
		if len(p) == 0 {
			continue
		}
		f.Subfields = append(f.Subfields, Subfield{Code: string(p[:1]), Value: string(p[1:])})
	}
	return f
}

// SplitBinary is a bufio.SplitFunc yielding one ISO 2709 record per token,
// using the record length from the leader. Line breaks between records are
// skipped.
func SplitBinary(data []byte, atEOF bool) (advance int, token []byte, err error) {
	skip := 0
	for skip < len(data) && (data[skip] == '\n' || data[skip] == '\r') {
		skip++
	}
	data = data[skip:]
	if len(data) == 0 {
		return skip, nil, nil
	}
	if len(data) < 5 {
		if atEOF {
			return 0, nil, fmt.Errorf("%w: trailing %d bytes", ErrInvalidRecord, len(data))
		}
		return skip, nil, nil
	}
	n, err := strconv.Atoi(string(data[:5]))
	if err != nil || n <= LeaderLength {
		return 0, nil, fmt.Errorf("%w: record length %q", ErrInvalidRecord, data[:5])
	}
	if len(data) < n {
		if atEOF {
			return 0, nil, fmt.Errorf("%w: truncated record, want %d bytes, got %d", ErrInvalidRecord, n, len(data))
		}
		return skip, nil, nil
	}
	if data[n-1] != recordTerminator {
		return 0, nil, fmt.Errorf("%w: missing record terminator", ErrInvalidRecord)
	}
	return skip + n, data[:n], nil
}

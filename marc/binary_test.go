package marc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// encodeBinary writes fields in transmission format. The leader length and
// base address are filled in.
func encodeBinary(leader string, fields ...Field) []byte {
	var dir, body bytes.Buffer
	for _, f := range fields {
		var b bytes.Buffer
		if f.IsControl() {
			b.WriteString(f.Value)
		} else {
			b.WriteString(f.Indicators)
			for _, sf := range f.Subfields {
				b.WriteByte(subfieldDelimiter)
				b.WriteString(sf.Code)
				b.WriteString(sf.Value)
			}
		}
		b.WriteByte(fieldTerminator)
		fmt.Fprintf(&dir, "%s%04d%05d", f.Tag, b.Len(), body.Len())
		body.Write(b.Bytes())
	}
	dir.WriteByte(fieldTerminator)
	base := LeaderLength + dir.Len()
	total := base + body.Len() + 1
	l := fmt.Sprintf("%05d%s%05d%s", total, leader[5:12], base, leader[17:])
	var out bytes.Buffer
	out.WriteString(l)
	out.Write(dir.Bytes())
	out.Write(body.Bytes())
	out.WriteByte(recordTerminator)
	return out.Bytes()
}

var binaryFields = []Field{
	{Tag: "001", Value: "n79046291"},
	{Tag: "008", Value: "790406n| azannaabn          |a aaa      "},
	{Tag: "010", Indicators: "  ", Subfields: []Subfield{{Code: "a", Value: "n  79046291 "}}},
	{Tag: "100", Indicators: "1 ", Subfields: []Subfield{
		{Code: "a", Value: "Abe, Eiichi,"},
		{Code: "d", Value: "1927-"},
	}},
}

func TestDecodeBinary(t *testing.T) {
	data := encodeBinary("00000cz  a2200000n  4500", binaryFields...)
	rec, err := DecodeBinary(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(binaryFields, rec.All()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if rec.ControlNumber() != "n79046291" {
		t.Fatalf("got control number %q", rec.ControlNumber())
	}
	l, err := ParseLeader(rec.Leader())
	if err != nil {
		t.Fatal(err)
	}
	if l.Length != len(data) || !l.IsAuthority() {
		t.Fatalf("unexpected leader: %+v", l)
	}
}

func TestDecodeBinaryInvalid(t *testing.T) {
	valid := encodeBinary("00000cz  a2200000n  4500", binaryFields...)
	var cases = []struct {
		about string
		data  []byte
	}{
		{"empty", nil},
		{"short", []byte("00026cz  a22")},
		{"bad base", append([]byte("00100cz  a22xxxxxn  4500"), valid[24:]...)},
		{"truncated", valid[:60]},
		{"negative length", withDirectoryEntry(valid, 0, "001-00100000")},
		{"negative offset", withDirectoryEntry(valid, 0, "0010010-0001")},
		{"zero length", withDirectoryEntry(valid, 0, "001000000000")},
		{"past end", withDirectoryEntry(valid, 0, "001999900000")},
	}
	for _, c := range cases {
		if _, err := DecodeBinary(c.data); !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("%s: expected ErrInvalidRecord, got %v", c.about, err)
		}
	}
}

// withDirectoryEntry returns a copy of a record with the i-th directory entry
// replaced.
func withDirectoryEntry(data []byte, i int, entry string) []byte {
	b := append([]byte(nil), data...)
	copy(b[LeaderLength+i*directoryEntry:], entry)
	return b
}

func TestSplitBinary(t *testing.T) {
	a := encodeBinary("00000cz  a2200000n  4500", binaryFields[0])
	b := encodeBinary("00000cz  a2200000n  4500", binaryFields...)
	var buf bytes.Buffer
	buf.Write(a)
	buf.WriteString("\n")
	buf.Write(b)
	scanner := bufio.NewScanner(&buf)
	scanner.Buffer(make([]byte, 16), 1024)
	scanner.Split(SplitBinary)
	var tokens [][]byte
	for scanner.Scan() {
		tokens = append(tokens, append([]byte(nil), scanner.Bytes()...))
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]byte{a, b}, tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitBinaryTruncated(t *testing.T) {
	b := encodeBinary("00000cz  a2200000n  4500", binaryFields...)
	scanner := bufio.NewScanner(bytes.NewReader(b[:len(b)-10]))
	scanner.Split(SplitBinary)
	for scanner.Scan() {
		t.Fatalf("unexpected token")
	}
	if !errors.Is(scanner.Err(), ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", scanner.Err())
	}
}

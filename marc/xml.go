package marc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ErrNoRecord is returned if a document does not contain a record element.
var ErrNoRecord = errors.New("no record element found")

// ReadCollection parses a MARCXML document and returns all records in
// document order. Both namespaced ("marc:record") and plain element names are
// accepted.
func ReadCollection(r io.Reader) ([]*Record, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("marcxml: %w", err)
	}
	var records []*Record
	walkElements(doc, func(n *xmlquery.Node) bool {
		if localName(n) != "record" {
			return true
		}
		records = append(records, decodeRecord(n))
		return false
	})
	return records, nil
}

// ParseRecord parses a single record, e.g. a chunk cut out of a larger
// collection.
func ParseRecord(b []byte) (*Record, error) {
	records, err := ReadCollection(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecord
	}
	return records[0], nil
}

func decodeRecord(n *xmlquery.Node) *Record {
	rec := &Record{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch localName(c) {
		case "leader":
			rec.leader = c.InnerText()
		case "controlfield":
			rec.fields = append(rec.fields, Field{
				Tag:   c.SelectAttr("tag"),
				Value: c.InnerText(),
			})
		case "datafield":
			f := Field{
				Tag:        c.SelectAttr("tag"),
				Indicators: indicator(c.SelectAttr("ind1")) + indicator(c.SelectAttr("ind2")),
			}
			for s := c.FirstChild; s != nil; s = s.NextSibling {
				if s.Type != xmlquery.ElementNode || localName(s) != "subfield" {
					continue
				}
				f.Subfields = append(f.Subfields, Subfield{
					Code:  s.SelectAttr("code"),
					Value: s.InnerText(),
				})
			}
			rec.fields = append(rec.fields, f)
		}
	}
	return rec
}

func indicator(s string) string {
	if s == "" {
		return " "
	}
	return s[:1]
}

// walkElements visits element nodes depth first; f returns false to skip the
// children of a node.
func walkElements(n *xmlquery.Node, f func(*xmlquery.Node) bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if f(c) {
			walkElements(c, f)
		}
	}
}

func localName(n *xmlquery.Node) string {
	if i := strings.LastIndex(n.Data, ":"); i >= 0 {
		return n.Data[i+1:]
	}
	return n.Data
}

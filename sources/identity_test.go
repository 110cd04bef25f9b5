package sources

import (
	"testing"

	"github.com/miku/marc2ld/marc"
)

func TestNew(t *testing.T) {
	var cases = []struct {
		iri      string
		resolved bool
	}{
		{"", false},
		{"n79046291", false},
		{"viaf.org/viaf/39377411", false},
		{" http://viaf.org/viaf/39377411 ", true},
		{`http://viaf.org/viaf/39377411>"x`, false},
		{"http://viaf.org/viaf/{39377411}", false},
	}
	for _, c := range cases {
		id := New(VIAF, c.iri)
		if id.Resolved() != c.resolved {
			t.Errorf("New(%q): got resolved=%v, want %v", c.iri, id.Resolved(), c.resolved)
		}
		if !c.resolved && id.IRI != "" {
			t.Errorf("New(%q): unresolved identity carries IRI %q", c.iri, id.IRI)
		}
	}
	var nilID *Identity
	if nilID.Resolved() || nilID.Link(ISNI) != "" {
		t.Errorf("nil identity should be unresolved")
	}
}

func TestEmbeddedIRI(t *testing.T) {
	fields := []marc.Field{
		{Tag: "024", Subfields: []marc.Subfield{
			{Code: "a", Value: "http://www.isni.org/0000000109311081"},
			{Code: "2", Value: "isni"},
		}},
		{Tag: "024", Subfields: []marc.Subfield{
			{Code: "a", Value: "see http://viaf.org/viaf/39377411"},
			{Code: "2", Value: "viaf"},
		}},
	}
	var cases = []struct {
		pattern string
		want    string
	}{
		{VIAFPattern, "http://viaf.org/viaf/39377411"},
		{ISNIPattern, "http://www.isni.org/0000000109311081"},
		{LOCPattern, ""},
	}
	for _, c := range cases {
		if got := EmbeddedIRI(fields, c.pattern); got != c.want {
			t.Errorf("EmbeddedIRI(%s): got %q, want %q", c.pattern, got, c.want)
		}
	}
	broken := []marc.Field{{Tag: "024", Subfields: []marc.Subfield{
		{Code: "a", Value: `http://viaf.org/viaf/39377411>"x`},
	}}}
	if got := EmbeddedIRI(broken, VIAFPattern); got != "" {
		t.Errorf("got %q for an IRI with forbidden characters", got)
	}
	if got := EmbeddedIRI(nil, VIAFPattern); got != "" {
		t.Errorf("got %q for no fields", got)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{Library: "lib", LOC: "loc", VIAF: "viaf", ISNI: "isni", OCLC: "oclc", Kind(42): "unknown"} {
		if got := k.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

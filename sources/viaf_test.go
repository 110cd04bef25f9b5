package sources

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDescribeVIAF(t *testing.T) {
	g := loadGraph(t, "testdata/viaf-39377411.rdf")
	id := DescribeVIAF(g, "http://viaf.org/viaf/39377411")
	if !id.IsPerson {
		t.Errorf("expected person")
	}
	if id.Label != "Abe, Eiichi, 1927-" {
		t.Errorf("got label %q", id.Label)
	}
	if got, want := id.Link(ISNI), "http://isni.org/isni/0000000081338196"; got != want {
		t.Errorf("got ISNI %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"Abe"}, id.FamilyNames); diff != "" {
		t.Errorf("family names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Eiichi"}, id.GivenNames); diff != "" {
		t.Errorf("given names (-want +got):\n%s", diff)
	}
}

func TestVIAFDocument(t *testing.T) {
	for _, iri := range []string{"http://viaf.org/viaf/39377411", "http://viaf.org/viaf/39377411/"} {
		if got, want := VIAFDocument(iri), "http://viaf.org/viaf/39377411/rdf.xml"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

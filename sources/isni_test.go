package sources

import "testing"

func TestNormalizeISNI(t *testing.T) {
	var cases = []struct {
		iri  string
		want string
	}{
		{"http://www.isni.org/0000000109311081", "http://www.isni.org/isni/0000000109311081"},
		{"http://www.isni.org/isni/0000000109311081", "http://www.isni.org/isni/0000000109311081"},
		{"http://isni.org/0000000081338196", "http://isni.org/isni/0000000081338196"},
		{"http://isni.org/isni/0000000081338196", "http://isni.org/isni/0000000081338196"},
		{"http://viaf.org/viaf/39377411", "http://viaf.org/viaf/39377411"},
	}
	for _, c := range cases {
		got := NormalizeISNI(c.iri)
		if got != c.want {
			t.Errorf("NormalizeISNI(%q): got %q, want %q", c.iri, got, c.want)
		}
		if again := NormalizeISNI(got); again != got {
			t.Errorf("NormalizeISNI not idempotent: %q -> %q", got, again)
		}
	}
}

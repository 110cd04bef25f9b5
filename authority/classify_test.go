package authority

import (
	"testing"

	"github.com/miku/marc2ld/marc"
)

func TestClassify(t *testing.T) {
	var cases = []struct {
		about  string
		fields []marc.Field
		want   EntityType
	}{
		{"person", []marc.Field{data("100", "a", "Abe, Eiichi,", "d", "1927-")}, Person},
		{"name title", []marc.Field{data("100", "a", "Abe, Kōbō,", "t", "Suna no onna.")}, NameTitle},
		{"person wins over corporation", []marc.Field{
			data("110", "a", "Stanford University."),
			data("100", "a", "Abe, Eiichi,"),
		}, Person},
		{"100 without name falls through", []marc.Field{
			data("100", "d", "1927-"),
			data("110", "a", "Stanford University."),
		}, Corporation},
		{"corporation", []marc.Field{data("110", "a", "Stanford University.")}, Corporation},
		{"corporation without subfields", []marc.Field{data("110")}, Corporation},
		{"conference", []marc.Field{data("111", "a", "Joseph Priestley Symposium")}, Conference},
		{"conference wins over title", []marc.Field{
			data("130", "a", "Fair maid of the Exchange"),
			data("111", "a", "Joseph Priestley Symposium"),
		}, Conference},
		{"uniform title", []marc.Field{data("130", "a", "Fair maid of the Exchange")}, UniformTitle},
		{"malformed title", []marc.Field{data("130", "l", "English")}, Unknown},
		{"geographic", []marc.Field{data("151", "a", "Stanford (Calif.)")}, Geographic},
		{"unknown", []marc.Field{data("150", "a", "Physics")}, Unknown},
	}
	for _, c := range cases {
		fields := append([]marc.Field{control("001", "n1")}, c.fields...)
		e := newExtractor(fields...)
		if got := e.Classify(); got != c.want {
			t.Errorf("%s: got %v, want %v", c.about, got, c.want)
		}
	}
}

func TestEntityTypeString(t *testing.T) {
	if got := NameTitle.String(); got != "name-title" {
		t.Fatalf("got %q", got)
	}
	if got := EntityType(99).String(); got != "invalid" {
		t.Fatalf("got %q", got)
	}
}

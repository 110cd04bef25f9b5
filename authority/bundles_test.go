package authority

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/miku/marc2ld/config"
	"github.com/miku/marc2ld/marc"
)

const leader = "00774cz  a2200253n  4500"

func control(tag, value string) marc.Field {
	return marc.Field{Tag: tag, Value: value}
}

func data(tag string, kv ...string) marc.Field {
	f := marc.Field{Tag: tag, Indicators: "  "}
	for i := 0; i+1 < len(kv); i += 2 {
		f.Subfields = append(f.Subfields, marc.Subfield{Code: kv[i], Value: kv[i+1]})
	}
	return f
}

func newExtractor(fields ...marc.Field) *Extractor {
	return NewExtractor(marc.NewRecord(leader, fields...), config.Default().Fields)
}

func TestRecordID(t *testing.T) {
	e := newExtractor(control("001", " n79046291 "))
	id, err := e.RecordID()
	if err != nil {
		t.Fatal(err)
	}
	if id != "n79046291" {
		t.Fatalf("got %q", id)
	}
	for _, e := range []*Extractor{newExtractor(), newExtractor(control("001", "  "))} {
		_, err := e.RecordID()
		var mfe MissingFieldError
		if !errors.As(err, &mfe) || mfe.Tag != "001" {
			t.Fatalf("expected MissingFieldError for 001, got %v", err)
		}
	}
}

func TestField100(t *testing.T) {
	e := newExtractor(
		control("001", "n79044934"),
		data("100", "a", "Abe, Eiichi,", "d", "1927-", "t", "Hoppu daisū.", "l", "English"),
		data("100", "a", "Ignored"),
	)
	want := PersonalName{Name: "Abe, Eiichi,", Date: "1927-", Title: "Hoppu daisū.", Lang: "English"}
	if diff := cmp.Diff(want, e.Field100()); diff != "" {
		t.Fatalf("Field100 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(e.Field100(), e.Field100()); diff != "" {
		t.Fatalf("Field100 not idempotent:\n%s", diff)
	}
}

func TestAbsentFieldsAreTagged(t *testing.T) {
	e := newExtractor(control("001", "n1"))
	var cases = []struct {
		tag string
		err error
	}{
		{"100", e.Field100().Err},
		{"110", e.Field110().Err},
		{"111", e.Field111().Err},
		{"130", e.Field130().Err},
		{"151", e.Field151().Err},
		{"008", e.Field008().Err},
	}
	for _, c := range cases {
		var fe *FieldError
		if !errors.As(c.err, &fe) {
			t.Errorf("%s: expected FieldError, got %v", c.tag, c.err)
			continue
		}
		if fe.Tag != c.tag || !fe.Absent {
			t.Errorf("%s: got %+v", c.tag, fe)
		}
	}
}

func TestField110Composite(t *testing.T) {
	e := newExtractor(data("110", "b", "Dept. of Physics.", "a", "Stanford University.", "c", "Stanford, Calif.", "b", "Laboratory"))
	want := "Stanford University. : Dept. of Physics. : Laboratory : Stanford, Calif."
	got := e.Field110()
	if got.Err != nil {
		t.Fatal(got.Err)
	}
	if got.Name != want {
		t.Fatalf("got %q, want %q", got.Name, want)
	}
}

func TestField111Heading(t *testing.T) {
	e := newExtractor(data("111", "a", "Joseph Priestley Symposium", "d", "(1974 :", "c", "Wilkes-Barre, Pa.)"))
	if got, want := e.Field111().Heading(), "Joseph Priestley Symposium(1974 :Wilkes-Barre, Pa.)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestField130And151RequireA(t *testing.T) {
	e := newExtractor(data("130", "l", "English"), data("151", "z", "Europe"))
	var fe *FieldError
	if !errors.As(e.Field130().Err, &fe) || fe.Code != "a" || fe.Absent {
		t.Errorf("130: got %v", e.Field130().Err)
	}
	if !errors.As(e.Field151().Err, &fe) || fe.Code != "a" {
		t.Errorf("151: got %v", e.Field151().Err)
	}
	e = newExtractor(data("130", "a", "Fair maid of the  Exchange"), data("151", "a", "Stanford (Calif.)"))
	if got := e.Field130(); got.Err != nil || got.Title != "Fair maid of the Exchange" {
		t.Errorf("130: got %+v", got)
	}
	if got := e.Field151(); got.Err != nil || got.Name != "Stanford (Calif.)" {
		t.Errorf("151: got %+v", got)
	}
}

func TestNormalization(t *testing.T) {
	e := newExtractor(data("100", "a", "Natsume, Sôseki,\n"))
	if got, want := e.Field100().Name, "Natsume, Sôseki,"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseFixed(t *testing.T) {
	got := ParseFixed("790301n| acannaabn          |a aaa      ")
	want := Fixed{
		Entered:               time.Date(1979, 3, 1, 0, 0, 0, 0, time.UTC),
		GeographicSubdivision: "n",
		RomanizationScheme:    "|",
		Kind:                  "a",
		Rules:                 "AACR2",
		HeadingSystem:         "a",
		SeriesType:            "n",
		SeriesNumbered:        "n",
		MainEntry:             true,
		SubjectEntry:          true,
		SeriesEntry:           false,
		SubjectSubdivision:    "n",
		GovernmentAgency:      "|",
		ReferenceEvaluation:   "a",
		RecordAvailable:       true,
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Fixed{}, "Err")); diff != "" {
		t.Fatalf("ParseFixed mismatch (-want +got):\n%s", diff)
	}
	if got.Err != nil {
		t.Fatal(got.Err)
	}
}

func TestParseFixedLanguagesAndErrors(t *testing.T) {
	var cases = []struct {
		about     string
		value     string
		languages []string
		rules     string
		err       bool
	}{
		{"english", "790301n|eacannaabn          |a aaa      ", []string{"English"}, "AACR2", false},
		{"french", "790301n|fazannaabn          |a aaa      ", []string{"French"}, "OTHER", false},
		{"both", "790301n|badannaabn          |a aaa      ", []string{"English", "French"}, "AACR2 compatible", false},
		{"unknown rules", "790301n| axannaabn          |a aaa      ", nil, "", false},
		{"too short", "790301n| ac", nil, "", true},
		{"bad date", "79x301n| acannaabn          |a aaa      ", nil, "", true},
	}
	for _, c := range cases {
		got := ParseFixed(c.value)
		if (got.Err != nil) != c.err {
			t.Errorf("%s: got err %v, want err %v", c.about, got.Err, c.err)
			continue
		}
		if c.err {
			continue
		}
		if diff := cmp.Diff(c.languages, got.Languages); diff != "" {
			t.Errorf("%s: languages (-want +got):\n%s", c.about, diff)
		}
		if got.Rules != c.rules {
			t.Errorf("%s: got rules %q, want %q", c.about, got.Rules, c.rules)
		}
	}
}

func TestModified(t *testing.T) {
	e := newExtractor(control("001", "n79044934"), control("005", "20150326113052.0"))
	got, err := e.Modified()
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2015, 3, 26, 11, 30, 52, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if _, err := newExtractor(control("001", "n79044934")).Modified(); err == nil {
		t.Fatal("expected error without 005")
	}
}

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/miku/marc2ld/authority"
	"github.com/miku/marc2ld/config"
	"github.com/miku/marc2ld/graph"
	"github.com/miku/marc2ld/lookup"
	"github.com/miku/marc2ld/marc"
	"github.com/miku/marc2ld/pproc/record"
	"github.com/miku/marc2ld/resolve"
	"github.com/miku/marc2ld/sources"
	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"
)

// existsFetcher accepts every probe and retrieves nothing.
type existsFetcher struct{}

func (existsFetcher) Exists(ctx context.Context, iri string) (bool, error) { return true, nil }

func (existsFetcher) FetchRDF(ctx context.Context, iri string) (*graph.Graph, error) {
	return nil, lookup.ErrNotFound
}

func (existsFetcher) FetchRDFa(ctx context.Context, iri string) (*graph.Graph, error) {
	return nil, lookup.ErrNotFound
}

const collection = `<?xml version="1.0" encoding="UTF-8"?>
<collection xmlns="http://www.loc.gov/MARC21/slim">
<record>
  <leader>00774cz  a2200253n  4500</leader>
  <controlfield tag="001">n79046291</controlfield>
  <datafield tag="100" ind1="1" ind2=" "><subfield code="a">Abe, Eiichi,</subfield></datafield>
</record>
<record>
  <leader>00774cz  a2200253n  4500</leader>
  <datafield tag="100" ind1="1" ind2=" "><subfield code="a">No id</subfield></datafield>
</record>
</collection>`

func TestProcessBatch(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	var (
		st     stats
		report bytes.Buffer
		out    bytes.Buffer
		rep    = &reporter{enc: json.NewEncoder(&report)}
		f      = processFunc(marc.ParseRecord, config.Default(), existsFetcher{}, graph.FormatNTriples, rep, &st, logger)
	)
	proc := record.NewProcessor(f, record.WithWorkers(2))
	if err := proc.Process(context.Background(), bytes.NewBufferString(collection), &out); err != nil {
		t.Fatal(err)
	}
	if st.total != 2 || st.ok != 1 || st.skipped != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	want := "<http://linked-data.example.org/library/authority/n79046291> <http://www.w3.org/2002/07/owl#sameAs> <http://id.loc.gov/authorities/names/n79046291> ."
	if !bytes.Contains(out.Bytes(), []byte(want)) {
		t.Fatalf("missing sameAs statement in:\n%s", out.String())
	}
	var entry struct {
		ID         string            `json:"id"`
		Entity     string            `json:"entity"`
		Identities map[string]string `json:"identities"`
	}
	if err := json.Unmarshal(report.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.ID != "n79046291" || entry.Entity != "person" || entry.Identities["loc"] == "" {
		t.Fatalf("unexpected report entry: %+v", entry)
	}
}

func TestParseFormat(t *testing.T) {
	var cases = []struct {
		s      string
		result graph.Format
		err    bool
	}{
		{"ntriples", graph.FormatNTriples, false},
		{"nt", graph.FormatNTriples, false},
		{"Turtle", graph.FormatTurtle, false},
		{"ttl", graph.FormatTurtle, false},
		{"jsonld", graph.FormatJSONLD, false},
		{"rdfxml", "", true},
	}
	for _, c := range cases {
		f, err := parseFormat(c.s)
		if (err != nil) != c.err {
			t.Fatalf("parseFormat(%q): got err %v", c.s, err)
		}
		if f != c.result {
			t.Fatalf("parseFormat(%q): got %v, want %v", c.s, f, c.result)
		}
	}
}

func TestOpenFile(t *testing.T) {
	const payload = "<record><controlfield tag=\"001\">1</controlfield></record>"
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.xml")
	if err := os.WriteFile(plain, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}
	gz := filepath.Join(dir, "a.xml.gz")
	f, err := os.Create(gz)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(f)
	if _, err := io.WriteString(gw, payload); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()
	zst := filepath.Join(dir, "a.xml.zst")
	f, err = os.Create(zst)
	if err != nil {
		t.Fatal(err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(zw, payload); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()
	for _, filename := range []string{plain, gz, zst} {
		rc, err := openFile(filename)
		if err != nil {
			t.Fatalf("open %s: %v", filename, err)
		}
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", filename, err)
		}
		if err := rc.Close(); err != nil {
			t.Fatalf("close %s: %v", filename, err)
		}
		if string(b) != payload {
			t.Fatalf("%s: got %q", filename, string(b))
		}
	}
	if _, err := openFile(filepath.Join(dir, "missing.xml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist, got %v", err)
	}
}

func TestNewReportEntry(t *testing.T) {
	result := &resolve.Result{
		ID:      "n79046291",
		Session: "s",
		Entity:  authority.Person,
		Identities: map[sources.Kind]*sources.Identity{
			sources.LOC:  {Kind: sources.LOC, IRI: "http://id.loc.gov/authorities/names/n79046291"},
			sources.VIAF: {Kind: sources.VIAF},
		},
		Warnings: []error{errors.New("viaf: not found")},
	}
	entry := newReportEntry(result)
	if entry.Entity != "person" {
		t.Fatalf("got entity %q", entry.Entity)
	}
	want := map[string]string{"loc": "http://id.loc.gov/authorities/names/n79046291"}
	if diff := cmp.Diff(want, entry.Identities); diff != "" {
		t.Fatalf("identities mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"viaf: not found"}, entry.Warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestEnabledLookups(t *testing.T) {
	cfg := config.Default()
	if got := enabledLookups(cfg); got != "" {
		t.Fatalf("got %q, want none", got)
	}
	cfg.GetLOC, cfg.GetOCLC = true, true
	if got := enabledLookups(cfg); got != "loc,oclc" {
		t.Fatalf("got %q", got)
	}
}

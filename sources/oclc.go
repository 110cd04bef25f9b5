package sources

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/miku/marc2ld/config"
	"github.com/miku/marc2ld/graph"
	"github.com/miku/marc2ld/marc"
)

var trailingDigits = regexp.MustCompile(`\d+$`)

// OCLCFromControlNumber formats the trailing numeric run of the first $a of
// the OCLC control number field into the WorldCat namespace, e.g.
// "(OCoLC)oca00229560" yields prefix + "00229560".
func OCLCFromControlNumber(fields []marc.Field, p config.Prefixes) string {
	if len(fields) == 0 {
		return ""
	}
	v, ok := fields[0].First("a")
	if !ok {
		return ""
	}
	digits := trailingDigits.FindString(strings.TrimSpace(v))
	if digits == "" {
		return ""
	}
	return p.OCLC + digits
}

// OCLCIdentity returns the WorldCat identities IRI for a LOC names
// authority, e.g. .../identities/lccn-n79046291, or the empty string for
// IRIs outside the names namespace.
func OCLCIdentity(locIRI string, p config.Prefixes) string {
	if locIRI == "" || !IsNames(locIRI, p) {
		return ""
	}
	return p.OCLCIdentities + "lccn-" + LOCID(locIRI)
}

// CanonicalCreativeWork adds the "www." host prefix WorldCat uses in its own
// descriptions, if missing.
func CanonicalCreativeWork(iri string) string {
	u, err := url.Parse(iri)
	if err != nil || u.Host != "worldcat.org" {
		return iri
	}
	u.Host = "www." + u.Host
	return u.String()
}

// CreativeWorks returns the distinct creative works declared in an OCLC
// identity description, in document order and canonical form.
func CreativeWorks(g *graph.Graph, identity string) []string {
	var (
		result []string
		seen   = make(map[string]bool)
	)
	for _, s := range g.Subjects(graph.RDFType, graph.IRI(graph.SchemaCreativeWork)) {
		if s == identity || strings.HasPrefix(s, "_:") || !graph.ValidIRI(s) {
			continue
		}
		s = CanonicalCreativeWork(s)
		if seen[s] {
			continue
		}
		seen[s] = true
		result = append(result, s)
	}
	return result
}

// WorkVariants lists the IRIs to try, in order, when looking up the generic
// work of a creative work: as given, without "www.", with the numeric id
// stripped of leading zeros and with both changes applied.
func WorkVariants(iri string) []string {
	noWWW := strings.ReplaceAll(iri, "www.", "")
	return []string{
		iri,
		noWWW,
		canonicalNumericID(iri),
		canonicalNumericID(noWWW),
	}
}

// canonicalNumericID rewrites a zero padded trailing id, e.g.
// .../oclc/004933024 to .../oclc/4933024.
func canonicalNumericID(iri string) string {
	i := strings.LastIndex(iri, "/")
	if i < 0 {
		return iri
	}
	id := iri[i+1:]
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return iri
	}
	return iri[:i+1] + strconv.FormatUint(n, 10)
}

// Works returns the exampleOfWork objects of the first variant of a creative
// work IRI that has any in g.
func Works(g *graph.Graph, creativeWork string) []string {
	for _, v := range WorkVariants(creativeWork) {
		var works []string
		for _, t := range g.Objects(v, graph.SchemaExampleOfWork) {
			if t.IsIRI() && graph.ValidIRI(t.Value) {
				works = append(works, t.Value)
			}
		}
		if len(works) > 0 {
			return works
		}
	}
	return nil
}

// Role names an authorship relation of a creative work.
type Role string

const (
	Creator     Role = graph.SchemaCreator
	Contributor Role = graph.SchemaContributor
	Editor      Role = graph.SchemaEditor
)

// Roles in the order they are tested.
var Roles = []Role{Creator, Contributor, Editor}

// AttributeRole returns the first role, in creator, contributor, editor
// order, whose relation in the creative work description points to the
// agent IRI.
func AttributeRole(g *graph.Graph, agent string) (Role, bool) {
	if g == nil || agent == "" {
		return "", false
	}
	object := graph.IRI(agent)
	for _, r := range Roles {
		if len(g.Subjects(string(r), object)) > 0 {
			return r, true
		}
	}
	return "", false
}

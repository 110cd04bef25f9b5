package sources

import (
	"strings"
	"unicode"

	"github.com/miku/marc2ld/config"
	"github.com/miku/marc2ld/graph"
)

// LOCPattern identifies id.loc.gov IRIs.
const LOCPattern = "id.loc.gov"

// LOCCandidate derives an id.loc.gov IRI from a record id: ids starting with
// "n" are name authorities, ids starting with "sh" subject headings. Any
// other id yields the empty string. The candidate still needs a probe.
func LOCCandidate(id string, p config.Prefixes) string {
	id = strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, id))
	switch {
	case strings.HasPrefix(id, "n"):
		return p.LOCNames + id
	case strings.HasPrefix(id, "sh"):
		return p.LOCSubjects + id
	default:
		return ""
	}
}

// LOCDocument is the location of the RDF description of a LOC authority.
func LOCDocument(iri, suffix string) string {
	return strings.TrimSuffix(iri, "/") + suffix
}

// IsNames reports whether a LOC IRI lives in the names namespace.
func IsNames(iri string, p config.Prefixes) bool {
	return strings.HasPrefix(iri, p.LOCNames)
}

// IsSubjects reports whether a LOC IRI lives in the subject headings
// namespace.
func IsSubjects(iri string, p config.Prefixes) bool {
	return strings.HasPrefix(iri, p.LOCSubjects)
}

// LOCID returns the last path segment of a LOC IRI, e.g. "n79046291".
func LOCID(iri string) string {
	iri = strings.TrimSuffix(iri, "/")
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}

// DescribeLOC reads label, entity flags, deprecation and the VIAF relation
// from a MADS/RDF description.
func DescribeLOC(g *graph.Graph, iri string) *Identity {
	id := New(LOC, iri)
	if !id.Resolved() || g == nil {
		return id
	}
	for _, p := range []string{graph.MADSAuthoritativeLabel, graph.SKOSPrefLabel, graph.RDFSLabel} {
		if vs := literals(g.Objects(iri, p)); len(vs) > 0 {
			id.Label = vs[0]
			break
		}
	}
	id.IsPerson = g.HasType(iri, graph.MADSPersonalName)
	id.IsNameTitle = g.HasType(iri, graph.MADSNameTitle)
	id.IsCorporation = g.HasType(iri, graph.MADSCorporateName)
	id.IsConference = g.HasType(iri, graph.MADSConferenceName)
	id.IsUniformTitle = g.HasType(iri, graph.MADSTitle)
	id.IsGeographic = g.HasType(iri, graph.MADSGeographic)
	id.Deprecated = g.HasType(iri, graph.MADSDeprecatedAuthority)
	for _, p := range []string{
		graph.MADSHasExactExternalAuthority,
		graph.MADSHasCloseExternalAuthority,
		graph.OWLSameAs,
		graph.SKOSExactMatch,
		graph.SKOSCloseMatch,
	} {
		if v := firstIRI(g.Objects(iri, p), VIAFPattern); v != "" {
			id.setLink(VIAF, v)
			break
		}
	}
	return id
}

package sources

import (
	"strings"

	"github.com/miku/marc2ld/graph"
)

// VIAFPattern identifies VIAF IRIs.
const VIAFPattern = "viaf.org"

// VIAFDocument is the location of the RDF/XML description of a VIAF cluster.
func VIAFDocument(iri string) string {
	return strings.TrimSuffix(iri, "/") + "/rdf.xml"
}

// DescribeVIAF reads label, person or organization flags, the ISNI relation
// and name parts from a VIAF cluster description.
func DescribeVIAF(g *graph.Graph, iri string) *Identity {
	id := New(VIAF, iri)
	if !id.Resolved() || g == nil {
		return id
	}
	for _, p := range []string{graph.SchemaName, graph.SKOSPrefLabel, graph.RDFSLabel} {
		if vs := literals(g.Objects(iri, p)); len(vs) > 0 {
			id.Label = vs[0]
			break
		}
	}
	id.IsPerson = g.HasType(iri, graph.SchemaPerson)
	id.IsCorporation = g.HasType(iri, graph.SchemaOrganization)
	for _, p := range []string{graph.SchemaSameAs, graph.OWLSameAs} {
		if v := firstIRI(g.ObjectsAny(p), ISNIPattern); v != "" {
			id.setLink(ISNI, NormalizeISNI(v))
			break
		}
	}
	id.FamilyNames = literals(g.ObjectsAny(graph.SchemaFamilyName))
	id.GivenNames = literals(g.ObjectsAny(graph.SchemaGivenName))
	return id
}

package resolve

import (
	"github.com/miku/marc2ld/authority"
	"github.com/miku/marc2ld/config"
	"github.com/miku/marc2ld/graph"
	"github.com/miku/marc2ld/sources"
)

// Input is everything the graph builder looks at.
type Input struct {
	Entity  authority.EntityType
	Bundles authority.Bundles
	Library *sources.Identity
	LOC     *sources.Identity
	VIAF    *sources.Identity
	ISNI    *sources.Identity
	Config  *config.Config
}

// Build turns resolved identities and field bundles into statements about
// the library IRI. It does no I/O and returns the same graph for the same
// input.
func Build(in Input) *graph.Graph {
	g := graph.New()
	subject := in.Library.IRI
	for _, id := range []*sources.Identity{in.LOC, in.VIAF, in.ISNI} {
		if id.Resolved() {
			g.Add(subject, graph.OWLSameAs, graph.IRI(id.IRI))
		}
	}
	for _, class := range Types(in.Entity, in.Config) {
		g.Add(subject, graph.RDFType, graph.IRI(class))
	}
	if name := ChooseLabel(in); name != "" {
		for _, p := range namePredicates(in.Config) {
			g.Add(subject, p, graph.Literal(name))
		}
	}
	if in.Entity == authority.Person && in.Config.GetLOC && in.Config.GetVIAF && in.VIAF.Resolved() {
		cfg := in.Config
		for _, n := range in.VIAF.FamilyNames {
			if cfg.UseFOAF {
				g.Add(subject, graph.FOAFFamilyName, graph.Literal(n))
			}
			if cfg.UseSchema {
				g.Add(subject, graph.SchemaFamilyName, graph.Literal(n))
			}
		}
		for _, n := range in.VIAF.GivenNames {
			if cfg.UseFOAF {
				g.Add(subject, graph.FOAFFirstName, graph.Literal(n))
			}
			if cfg.UseSchema {
				g.Add(subject, graph.SchemaGivenName, graph.Literal(n))
			}
		}
	}
	return g
}

// Types returns the classes asserted for an entity type. FOAF and schema.org
// classes follow the vocabulary flags, MADS classes are always asserted.
func Types(t authority.EntityType, cfg *config.Config) []string {
	var (
		foaf, schema []string
		mads         []string
	)
	switch t {
	case authority.Person:
		foaf, schema = []string{graph.FOAFPerson}, []string{graph.SchemaPerson}
	case authority.NameTitle:
		mads = []string{graph.MADSNameTitle}
	case authority.Corporation:
		foaf, schema = []string{graph.FOAFOrganization}, []string{graph.SchemaOrganization}
	case authority.Conference:
		schema = []string{graph.SchemaEvent}
	case authority.UniformTitle:
		mads, schema = []string{graph.MADSTitle}, []string{graph.SchemaTitle}
	case authority.Geographic:
		schema = []string{graph.SchemaPlace}
	case authority.Unknown:
		foaf, schema = []string{graph.FOAFAgent}, []string{graph.SchemaThing}
	case authority.Unimplemented:
		return nil
	}
	result := mads
	if cfg.UseFOAF {
		result = append(result, foaf...)
	}
	if cfg.UseSchema {
		result = append(result, schema...)
	}
	return result
}

func namePredicates(cfg *config.Config) []string {
	var result []string
	if cfg.UseFOAF {
		result = append(result, graph.FOAFName)
	}
	if cfg.UseSchema {
		result = append(result, graph.SchemaName)
	}
	return result
}

// ChooseLabel picks the name literal. The candidates are tried in order and
// the first non-empty one wins: the LOC label, if LOC descriptions are
// retrieved, then the value from the record. Uniform titles always use field
// 130; unknown and unimplemented entities get no name.
func ChooseLabel(in Input) string {
	var field string
	b := in.Bundles
	switch in.Entity {
	case authority.Person, authority.NameTitle:
		field = b.Personal.Name
	case authority.Corporation:
		field = b.Corporate.Name
	case authority.Conference:
		field = b.Meeting.Heading()
	case authority.UniformTitle:
		return b.Title.Title
	case authority.Geographic:
		field = b.Place.Name
	default:
		return ""
	}
	var candidates []string
	if in.Config.GetLOC && in.LOC.Resolved() {
		candidates = append(candidates, in.LOC.Label)
	}
	candidates = append(candidates, field)
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

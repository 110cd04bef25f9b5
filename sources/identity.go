// Package sources holds one identity per external authority source and the
// heuristics to find, derive and normalize their IRIs.
package sources

import (
	"strings"

	"github.com/miku/marc2ld/graph"
	"github.com/miku/marc2ld/marc"
)

// Kind of authority source.
type Kind int

const (
	Library Kind = iota
	LOC
	VIAF
	ISNI
	OCLC
)

func (k Kind) String() string {
	switch k {
	case Library:
		return "lib"
	case LOC:
		return "loc"
	case VIAF:
		return "viaf"
	case ISNI:
		return "isni"
	case OCLC:
		return "oclc"
	default:
		return "unknown"
	}
}

// Identity is what one source knows about an entity. An empty IRI means
// unresolved; otherwise the IRI is absolute.
type Identity struct {
	Kind  Kind   `json:"kind"`
	IRI   string `json:"iri,omitempty"`
	Label string `json:"label,omitempty"`

	IsPerson       bool `json:"person,omitempty"`
	IsNameTitle    bool `json:"name_title,omitempty"`
	IsCorporation  bool `json:"corporation,omitempty"`
	IsConference   bool `json:"conference,omitempty"`
	IsUniformTitle bool `json:"uniform_title,omitempty"`
	IsGeographic   bool `json:"geographic,omitempty"`
	Deprecated     bool `json:"deprecated,omitempty"`

	FamilyNames []string `json:"family_names,omitempty"`
	GivenNames  []string `json:"given_names,omitempty"`

	// Links holds IRIs of other sources this description points to, e.g. the
	// VIAF cluster of a LOC authority.
	Links map[Kind]string `json:"-"`
}

// New returns an identity for an IRI. Anything but an absolute IRI leaves
// the identity unresolved.
func New(kind Kind, iri string) *Identity {
	id := &Identity{Kind: kind}
	iri = strings.TrimSpace(iri)
	if graph.ValidIRI(iri) {
		id.IRI = iri
	}
	return id
}

// Resolved reports whether the identity has an IRI.
func (id *Identity) Resolved() bool {
	return id != nil && id.IRI != ""
}

// Link returns the IRI of a related source, or the empty string.
func (id *Identity) Link(k Kind) string {
	if id == nil {
		return ""
	}
	return id.Links[k]
}

func (id *Identity) setLink(k Kind, iri string) {
	if !graph.ValidIRI(iri) {
		return
	}
	if id.Links == nil {
		id.Links = make(map[Kind]string)
	}
	if _, ok := id.Links[k]; !ok {
		id.Links[k] = iri
	}
}

// EmbeddedIRI returns the first subfield value across fields that contains
// pattern and is an absolute IRI, e.g. a "viaf.org" link in field 024.
func EmbeddedIRI(fields []marc.Field, pattern string) string {
	for _, f := range fields {
		for _, sf := range f.Subfields {
			for _, token := range strings.Fields(sf.Value) {
				if strings.Contains(token, pattern) && graph.ValidIRI(token) {
					return token
				}
			}
		}
	}
	return ""
}

// firstIRI returns the first IRI object containing pattern.
func firstIRI(terms []graph.Term, pattern string) string {
	for _, t := range terms {
		if t.IsIRI() && strings.Contains(t.Value, pattern) {
			return t.Value
		}
	}
	return ""
}

// literals returns distinct literal values.
func literals(terms []graph.Term) []string {
	var (
		result []string
		seen   = make(map[string]bool)
	)
	for _, t := range terms {
		if !t.IsLiteral() || t.Value == "" || seen[t.Value] {
			continue
		}
		seen[t.Value] = true
		result = append(result, t.Value)
	}
	return result
}

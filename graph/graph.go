// Package graph is an insertion ordered statement set on top of the
// github.com/knakk/rdf term model, with readers for RDF/XML and RDFa and
// writers for N-Triples, Turtle and JSON-LD.
package graph

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/knakk/rdf"
)

// Kind of a term.
type Kind int

const (
	KindIRI Kind = iota
	KindLiteral
	KindBlank
)

// Term is an IRI, a blank node or a literal. Terms are comparable, which
// makes them usable as set members. Blank node values carry the "_:" prefix.
type Term struct {
	Kind  Kind
	Value string
	Lang  string
}

// IRI returns an IRI term.
func IRI(v string) Term {
	return Term{Kind: KindIRI, Value: v}
}

// Literal returns a plain literal.
func Literal(v string) Term {
	return Term{Kind: KindLiteral, Value: v}
}

// LangLiteral returns a language tagged literal.
func LangLiteral(v, lang string) Term {
	return Term{Kind: KindLiteral, Value: v, Lang: lang}
}

// Blank returns a blank node term for a label, with or without "_:".
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: "_:" + strings.TrimPrefix(label, "_:")}
}

// IsIRI reports whether the term is an IRI.
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

// IsBlank reports whether the term is a blank node.
func (t Term) IsBlank() bool {
	return t.Kind == KindBlank
}

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool {
	return t.Kind == KindLiteral
}

func (t Term) String() string {
	o, err := t.Object()
	if err != nil {
		return fmt.Sprintf("%q", t.Value)
	}
	return o.Serialize(rdf.NTriples)
}

// Object converts the term into an RDF object. IRIs are validated.
func (t Term) Object() (rdf.Object, error) {
	switch t.Kind {
	case KindIRI:
		iri, err := rdf.NewIRI(t.Value)
		if err != nil {
			return nil, fmt.Errorf("iri %q: %w", t.Value, err)
		}
		return iri, nil
	case KindBlank:
		b, err := rdf.NewBlank(strings.TrimPrefix(t.Value, "_:"))
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		if t.Lang != "" {
			lit, err := rdf.NewLangLiteral(t.Value, t.Lang)
			if err != nil {
				return nil, err
			}
			return lit, nil
		}
		lit, err := rdf.NewLiteral(t.Value)
		if err != nil {
			return nil, err
		}
		return lit, nil
	}
}

// termOf converts a decoded RDF term.
func termOf(t rdf.Term) Term {
	switch v := t.(type) {
	case rdf.IRI:
		return IRI(v.String())
	case rdf.Blank:
		return Blank(v.String())
	case rdf.Literal:
		return LangLiteral(v.String(), v.Lang())
	default:
		return Literal(t.String())
	}
}

// Statement is a single triple. The subject is an IRI or a "_:" blank node
// label, the predicate an IRI.
type Statement struct {
	Subject   string
	Predicate string
	Object    Term
}

// FromTriple converts a decoded RDF triple.
func FromTriple(t rdf.Triple) Statement {
	return Statement{
		Subject:   termOf(t.Subj).Value,
		Predicate: t.Pred.String(),
		Object:    termOf(t.Obj),
	}
}

// Triple converts the statement into an RDF triple, failing on IRIs that are
// not valid.
func (s Statement) Triple() (rdf.Triple, error) {
	var subj rdf.Subject
	if strings.HasPrefix(s.Subject, "_:") {
		b, err := rdf.NewBlank(strings.TrimPrefix(s.Subject, "_:"))
		if err != nil {
			return rdf.Triple{}, err
		}
		subj = b
	} else {
		iri, err := rdf.NewIRI(s.Subject)
		if err != nil {
			return rdf.Triple{}, fmt.Errorf("subject %q: %w", s.Subject, err)
		}
		subj = iri
	}
	pred, err := rdf.NewIRI(s.Predicate)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("predicate %q: %w", s.Predicate, err)
	}
	obj, err := s.Object.Object()
	if err != nil {
		return rdf.Triple{}, err
	}
	return rdf.Triple{Subj: subj, Pred: pred, Obj: obj}, nil
}

// Graph is a set of statements. Duplicates collapse, insertion order is kept
// for deterministic serialization. A Graph is not safe for concurrent use.
type Graph struct {
	statements []Statement
	seen       map[Statement]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{seen: make(map[Statement]struct{})}
}

// Insert adds statements, ignoring ones already present.
func (g *Graph) Insert(statements ...Statement) {
	if g.seen == nil {
		g.seen = make(map[Statement]struct{})
	}
	for _, s := range statements {
		if _, ok := g.seen[s]; ok {
			continue
		}
		g.seen[s] = struct{}{}
		g.statements = append(g.statements, s)
	}
}

// Add is a shortcut for inserting a single statement.
func (g *Graph) Add(subject, predicate string, object Term) {
	g.Insert(Statement{Subject: subject, Predicate: predicate, Object: object})
}

// Merge inserts all statements of another graph.
func (g *Graph) Merge(other *Graph) {
	if other == nil {
		return
	}
	g.Insert(other.statements...)
}

// Len returns the number of statements.
func (g *Graph) Len() int {
	return len(g.statements)
}

// Statements returns a copy of all statements in insertion order.
func (g *Graph) Statements() []Statement {
	result := make([]Statement, len(g.statements))
	copy(result, g.statements)
	return result
}

// Triples returns all statements as RDF triples, in insertion order. The
// first statement that cannot be represented is reported.
func (g *Graph) Triples() ([]rdf.Triple, error) {
	result := make([]rdf.Triple, 0, len(g.statements))
	for _, s := range g.statements {
		t, err := s.Triple()
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}

// Has reports whether a statement is in the graph.
func (g *Graph) Has(s Statement) bool {
	_, ok := g.seen[s]
	return ok
}

// Objects returns all objects for a subject and predicate.
func (g *Graph) Objects(subject, predicate string) []Term {
	var result []Term
	for _, s := range g.statements {
		if s.Subject == subject && s.Predicate == predicate {
			result = append(result, s.Object)
		}
	}
	return result
}

// ObjectsAny returns all objects of a predicate, regardless of subject.
func (g *Graph) ObjectsAny(predicate string) []Term {
	var result []Term
	for _, s := range g.statements {
		if s.Predicate == predicate {
			result = append(result, s.Object)
		}
	}
	return result
}

// Subjects returns all subjects having the given predicate and object.
func (g *Graph) Subjects(predicate string, object Term) []string {
	var result []string
	for _, s := range g.statements {
		if s.Predicate == predicate && s.Object == object {
			result = append(result, s.Subject)
		}
	}
	return result
}

// HasType reports whether subject is declared to be of the given class.
func (g *Graph) HasType(subject, class string) bool {
	return g.Has(Statement{Subject: subject, Predicate: RDFType, Object: IRI(class)})
}

// Equal reports whether two graphs contain the same statements, ignoring order.
func (g *Graph) Equal(other *Graph) bool {
	if g.Len() != other.Len() {
		return false
	}
	for _, s := range g.statements {
		if !other.Has(s) {
			return false
		}
	}
	return true
}

// ValidIRI reports whether s is an absolute IRI with scheme and host, free
// of the characters an IRI reference must not contain.
func ValidIRI(s string) bool {
	if _, err := rdf.NewIRI(s); err != nil {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

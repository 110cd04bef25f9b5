package graph

import (
	"errors"
	"fmt"
	"io"

	"github.com/knakk/rdf"
)

// ParseRDFXML reads an RDF/XML document, as served by LOC, VIAF and WorldCat.
func ParseRDFXML(r io.Reader) (*Graph, error) {
	g, err := decode(r, rdf.RDFXML)
	if err != nil {
		return nil, fmt.Errorf("rdf/xml: %w", err)
	}
	return g, nil
}

// ParseNTriples reads N-Triples.
func ParseNTriples(r io.Reader) (*Graph, error) {
	g, err := decode(r, rdf.NTriples)
	if err != nil {
		return nil, fmt.Errorf("ntriples: %w", err)
	}
	return g, nil
}

// ParseTurtle reads Turtle.
func ParseTurtle(r io.Reader) (*Graph, error) {
	g, err := decode(r, rdf.Turtle)
	if err != nil {
		return nil, fmt.Errorf("turtle: %w", err)
	}
	return g, nil
}

func decode(r io.Reader, f rdf.Format) (*Graph, error) {
	dec := rdf.NewTripleDecoder(r, f)
	g := New()
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return g, nil
		}
		if err != nil {
			return nil, err
		}
		g.Insert(FromTriple(t))
	}
}

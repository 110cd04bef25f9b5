package graph

import (
	"fmt"
	"io"

	"github.com/knakk/rdf"
)

// Format names a serialization.
type Format string

const (
	FormatNTriples Format = "ntriples"
	FormatTurtle   Format = "turtle"
	FormatJSONLD   Format = "jsonld"
)

// Extension returns the customary file extension for a format.
func (f Format) Extension() string {
	switch f {
	case FormatTurtle:
		return ".ttl"
	case FormatJSONLD:
		return ".jsonld"
	default:
		return ".nt"
	}
}

// Write serializes a graph in the given format.
func Write(w io.Writer, g *Graph, format Format) error {
	switch format {
	case FormatNTriples, "":
		return WriteNTriples(w, g)
	case FormatTurtle:
		return WriteTurtle(w, g)
	case FormatJSONLD:
		return WriteJSONLD(w, g)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteNTriples writes one line per statement, in insertion order.
func WriteNTriples(w io.Writer, g *Graph) error {
	return encode(w, g, rdf.NTriples)
}

// WriteTurtle writes the graph as Turtle, grouping statements of a subject.
func WriteTurtle(w io.Writer, g *Graph) error {
	return encode(w, g, rdf.Turtle)
}

// encode validates every statement before anything is written, so a graph
// with a bad IRI leaves no partial output behind.
func encode(w io.Writer, g *Graph, f rdf.Format) error {
	triples, err := g.Triples()
	if err != nil {
		return err
	}
	enc := rdf.NewTripleEncoder(w, f)
	for _, t := range triples {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return enc.Close()
}

package graph

import (
	"io"

	"github.com/segmentio/encoding/json"
)

// node is a JSON-LD node object in expanded form.
type node map[string]any

// WriteJSONLD writes the graph as expanded JSON-LD, one node per subject.
// Statements are validated like for the other formats.
func WriteJSONLD(w io.Writer, g *Graph) error {
	if _, err := g.Triples(); err != nil {
		return err
	}
	var (
		order []string
		nodes = make(map[string]node)
	)
	for _, s := range g.statements {
		n, ok := nodes[s.Subject]
		if !ok {
			n = node{"@id": s.Subject}
			nodes[s.Subject] = n
			order = append(order, s.Subject)
		}
		if s.Predicate == RDFType && s.Object.IsIRI() {
			types, _ := n["@type"].([]string)
			n["@type"] = append(types, s.Object.Value)
			continue
		}
		var value map[string]string
		switch {
		case s.Object.IsIRI(), s.Object.IsBlank():
			value = map[string]string{"@id": s.Object.Value}
		case s.Object.Lang != "":
			value = map[string]string{"@value": s.Object.Value, "@language": s.Object.Lang}
		default:
			value = map[string]string{"@value": s.Object.Value}
		}
		values, _ := n[s.Predicate].([]map[string]string)
		n[s.Predicate] = append(values, value)
	}
	doc := make([]node, 0, len(order))
	for _, id := range order {
		doc = append(doc, nodes[id])
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

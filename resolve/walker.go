package resolve

import (
	"context"
	"fmt"

	"github.com/miku/marc2ld/graph"
	"github.com/miku/marc2ld/sources"
)

// WorkKind distinguishes OCLC creative works (manifestations) from the
// generic works they exemplify.
type WorkKind int

const (
	CreativeWork WorkKind = iota
	Work
)

func (k WorkKind) String() string {
	if k == Work {
		return "work"
	}
	return "creative-work"
}

// WorkRef is a creative work or work found while walking OCLC.
type WorkRef struct {
	IRI  string   `json:"iri"`
	Kind WorkKind `json:"kind"`
}

// walkOCLC expands the OCLC identity of the record into its creative works.
// The identity IRI derived from a LOC names authority is preferred over the
// one from the control number. With OCLCAuthToWorks, each creative work is
// retrieved to attribute a role and to find its generic works.
func (s *Session) walkOCLC(ctx context.Context, g *graph.Graph, loc, viaf, oclc *sources.Identity) []WorkRef {
	identity := sources.OCLCIdentity(loc.IRI, s.cfg.Prefixes)
	if identity == "" {
		identity = oclc.IRI
	}
	if identity == "" {
		s.log.Debug("no OCLC identity to walk")
		return nil
	}
	g.Add(loc.IRI, graph.OWLSameAs, graph.IRI(identity))
	ig, err := s.fetch.FetchRDFa(ctx, identity)
	if err != nil {
		s.log.Warnf("cannot retrieve OCLC identity: %v", err)
		s.warn(ErrUnresolvedIdentity, fmt.Errorf("oclc identity %s: %w", identity, err))
		return nil
	}
	var refs []WorkRef
	for _, cw := range sources.CreativeWorks(ig, identity) {
		g.Add(identity, graph.RDFSSeeAlso, graph.IRI(cw))
		refs = append(refs, WorkRef{IRI: cw, Kind: CreativeWork})
		if !s.cfg.OCLCAuthToWorks {
			continue
		}
		cg, err := s.fetch.FetchRDF(ctx, cw)
		if err != nil {
			s.log.Debugf("cannot retrieve creative work: %v", err)
			continue
		}
		if viaf.Resolved() {
			if role, ok := sources.AttributeRole(cg, viaf.IRI); ok {
				g.Add(cw, string(role), graph.IRI(identity))
			}
		}
		works := sources.Works(cg, cw)
		if len(works) == 0 {
			s.log.Debugf("no generic work for %s", cw)
		}
		for _, w := range works {
			g.Add(cw, graph.SchemaExampleOfWork, graph.IRI(w))
			refs = append(refs, WorkRef{IRI: w, Kind: Work})
		}
	}
	return refs
}

// MarshalText renders the kind by name.
func (k WorkKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

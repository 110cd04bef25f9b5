package graph

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseRDFa extracts statements from RDFa annotated HTML, like the WorldCat
// identity pages. It handles typeof, about, resource, href, property, rel,
// content, prefix and vocab; relative references resolve against base.
func ParseRDFa(r io.Reader, base string) (*Graph, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	p := &rdfaParser{g: New(), base: base, prefixes: make(map[string]string)}
	if u, err := url.Parse(base); err == nil {
		p.baseURL = u
	}
	for k, v := range Prefixes {
		p.prefixes[k] = v
	}
	doc.Find("[prefix]").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("prefix")
		fields := strings.Fields(v)
		for i := 0; i+1 < len(fields); i += 2 {
			p.prefixes[strings.TrimSuffix(fields[i], ":")] = fields[i+1]
		}
	})
	doc.Find("[typeof]").Each(func(_ int, s *goquery.Selection) {
		subject := p.ownSubject(s)
		if subject == "" {
			return
		}
		v, _ := s.Attr("typeof")
		for _, t := range strings.Fields(v) {
			p.g.Add(subject, RDFType, IRI(p.expand(s, t)))
		}
	})
	doc.Find("[property],[rel]").Each(func(_ int, s *goquery.Selection) {
		subject := p.parentSubject(s)
		if v, ok := s.Attr("about"); ok {
			subject = p.resolve(v)
		}
		if v, ok := s.Attr("rel"); ok {
			if object := p.reference(s); object != "" {
				for _, t := range strings.Fields(v) {
					p.g.Add(subject, p.expand(s, t), IRI(object))
				}
			}
		}
		v, ok := s.Attr("property")
		if !ok {
			return
		}
		var object Term
		if content, ok := s.Attr("content"); ok {
			object = Literal(content)
		} else if ref := p.reference(s); ref != "" {
			object = IRI(ref)
		} else {
			object = Literal(strings.TrimSpace(s.Text()))
		}
		for _, t := range strings.Fields(v) {
			p.g.Add(subject, p.expand(s, t), object)
		}
	})
	return p.g, nil
}

type rdfaParser struct {
	g        *Graph
	base     string
	baseURL  *url.URL
	prefixes map[string]string
}

// ownSubject is the resource a typeof element describes.
func (p *rdfaParser) ownSubject(s *goquery.Selection) string {
	if v, ok := s.Attr("about"); ok {
		return p.resolve(v)
	}
	return p.reference(s)
}

// parentSubject walks up to the closest element establishing a subject.
func (p *rdfaParser) parentSubject(s *goquery.Selection) string {
	for a := s.Parent(); a.Length() > 0; a = a.Parent() {
		if v, ok := a.Attr("about"); ok {
			return p.resolve(v)
		}
		if _, ok := a.Attr("typeof"); ok {
			if ref := p.reference(a); ref != "" {
				return ref
			}
		}
	}
	return p.base
}

func (p *rdfaParser) reference(s *goquery.Selection) string {
	if v, ok := s.Attr("resource"); ok {
		return p.resolve(v)
	}
	if v, ok := s.Attr("href"); ok {
		return p.resolve(v)
	}
	return ""
}

func (p *rdfaParser) resolve(ref string) string {
	if p.baseURL == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return p.baseURL.ResolveReference(u).String()
}

// expand turns a CURIE or term into an IRI.
func (p *rdfaParser) expand(s *goquery.Selection, t string) string {
	if strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://") {
		return t
	}
	if i := strings.Index(t, ":"); i > 0 {
		if ns, ok := p.prefixes[t[:i]]; ok {
			return ns + t[i+1:]
		}
		return t
	}
	if v, ok := s.Closest("[vocab]").Attr("vocab"); ok {
		return v + t
	}
	return SchemaNamespace + t
}

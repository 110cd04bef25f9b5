// Package resolve turns one MARC authority record into a linked data graph:
// it resolves the LOC, VIAF, ISNI and OCLC identities of the record, walks
// OCLC creative works if asked to, and builds the statements.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/miku/marc2ld/authority"
	"github.com/miku/marc2ld/config"
	"github.com/miku/marc2ld/graph"
	"github.com/miku/marc2ld/marc"
	"github.com/miku/marc2ld/sources"
	"github.com/sirupsen/logrus"
)

// Fetcher is the HTTP collaborator, implemented by lookup.Client.
type Fetcher interface {
	Exists(ctx context.Context, iri string) (bool, error)
	FetchRDF(ctx context.Context, iri string) (*graph.Graph, error)
	FetchRDFa(ctx context.Context, iri string) (*graph.Graph, error)
}

// Result of a resolution. Graph is never nil.
type Result struct {
	ID         string                             `json:"id"`
	Session    string                             `json:"session"`
	Entity     authority.EntityType               `json:"-"`
	Graph      *graph.Graph                       `json:"-"`
	Identities map[sources.Kind]*sources.Identity `json:"-"`
	Fixed      authority.Fixed                    `json:"fixed"`
	Leader     marc.Leader                        `json:"leader"`
	Modified   *time.Time                         `json:"modified,omitempty"`
	Works      []WorkRef                          `json:"works,omitempty"`
	Warnings   []error                            `json:"-"`
}

// Identity returns the identity for a source, which may be unresolved.
func (r *Result) Identity(k sources.Kind) *sources.Identity {
	if id, ok := r.Identities[k]; ok {
		return id
	}
	return &sources.Identity{Kind: k}
}

// Resolve runs a fresh session for a record, logging to the standard logger.
func Resolve(ctx context.Context, rec marc.Source, cfg *config.Config, fetch Fetcher) (*Result, error) {
	return NewSession(rec, cfg, fetch, logrus.StandardLogger()).Run(ctx)
}

// Session owns everything resolved for a single record. A session is used
// once and by a single goroutine; sessions share only the read-only config.
type Session struct {
	cfg   *config.Config
	fetch Fetcher
	log   logrus.FieldLogger
	ex    *authority.Extractor

	id         string
	uuid       string
	identities map[sources.Kind]*sources.Identity
	warnings   []error

	// Descriptions are retrieved at most once.
	locDescribed  bool
	locErr        error
	viafDescribed bool
	viafErr       error
}

// NewSession prepares a session.
func NewSession(rec marc.Source, cfg *config.Config, fetch Fetcher, log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	sid := uuid.New().String()
	return &Session{
		cfg:        cfg,
		fetch:      fetch,
		log:        log.WithField("session", sid),
		ex:         authority.NewExtractor(rec, cfg.Fields),
		uuid:       sid,
		identities: make(map[sources.Kind]*sources.Identity),
	}
}

// Run resolves the record. Fatal failures come back as *Error wrapping
// ErrMissingMandatoryField or ErrLOCResolution.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	id, err := s.ex.RecordID()
	if err != nil {
		return nil, &Error{Kind: ErrMissingMandatoryField, Err: err}
	}
	s.id = id
	s.log = s.log.WithField("id", id)
	lib := s.library()
	loc, err := s.resolveLOC(ctx)
	if err != nil {
		return nil, err
	}
	if s.cfg.GetLOC {
		_ = s.describeLOC(ctx)
		loc = s.identities[sources.LOC]
	}
	entity := s.classify(loc)
	viaf := s.resolveVIAF(ctx, entity)
	isni := s.resolveISNI(ctx)
	viaf = s.identities[sources.VIAF]
	oclc := s.resolveOCLC()
	if loc.Deprecated {
		s.log.Warnf("%s deprecated", loc.IRI)
	}
	g := Build(Input{
		Entity:  entity,
		Bundles: s.ex.Bundles(),
		Library: lib,
		LOC:     loc,
		VIAF:    viaf,
		ISNI:    isni,
		Config:  s.cfg,
	})
	result := &Result{
		ID:         id,
		Session:    s.uuid,
		Entity:     entity,
		Graph:      g,
		Identities: s.identities,
		Fixed:      s.ex.Field008(),
	}
	if l, err := s.ex.Leader(); err == nil {
		result.Leader = l
	} else {
		s.log.Debugf("leader: %v", err)
	}
	if t, err := s.ex.Modified(); err == nil {
		result.Modified = &t
	}
	if s.cfg.GetOCLC {
		result.Works = s.walkOCLC(ctx, g, loc, viaf, oclc)
	}
	result.Warnings = s.warnings
	s.log.WithFields(logrus.Fields{
		"entity":     entity.String(),
		"statements": g.Len(),
		"warnings":   len(s.warnings),
	}).Debug("resolved")
	return result, nil
}

func (s *Session) warn(kind error, err error) {
	s.warnings = append(s.warnings, &Error{RecordID: s.id, Kind: kind, Err: err})
}

// library mints the local IRI; it never fails for a validated config.
func (s *Session) library() *sources.Identity {
	lib := sources.New(sources.Library, s.cfg.Prefixes.LibAuth+url.PathEscape(s.id))
	s.identities[sources.Library] = lib
	return lib
}

// resolveLOC uses an id.loc.gov IRI from the LOC field, or derives one from
// the record id and probes it. Failure is fatal.
func (s *Session) resolveLOC(ctx context.Context) (*sources.Identity, error) {
	fail := func(err error) error {
		s.log.Errorf("failed to resolve LOC IRI: %v", err)
		return &Error{RecordID: s.id, Kind: ErrLOCResolution, Err: err}
	}
	if iri := sources.EmbeddedIRI(s.ex.Fields(s.cfg.Fields.AuthLOC), sources.LOCPattern); iri != "" {
		s.log.Debugf("record contains LOC IRI: %s", iri)
		loc := sources.New(sources.LOC, iri)
		s.identities[sources.LOC] = loc
		return loc, nil
	}
	candidate := sources.LOCCandidate(s.id, s.cfg.Prefixes)
	if candidate == "" {
		return nil, fail(fmt.Errorf("no LOC IRI in field %s and no known prefix in id %q", s.cfg.Fields.AuthLOC, s.id))
	}
	probe := sources.LOCDocument(candidate, s.cfg.LOCProbeSuffix)
	s.log.Debugf("trying to validate LOC IRI: %s", probe)
	ok, err := s.fetch.Exists(ctx, probe)
	if err != nil {
		return nil, fail(err)
	}
	if !ok {
		return nil, fail(fmt.Errorf("probe %s: not found", probe))
	}
	s.log.Debugf("discovered LOC IRI: %s", candidate)
	loc := sources.New(sources.LOC, candidate)
	s.identities[sources.LOC] = loc
	return loc, nil
}

// describeLOC retrieves the LOC description once and merges it into the LOC
// identity. Failures are remembered, not returned.
func (s *Session) describeLOC(ctx context.Context) error {
	if s.locDescribed {
		return s.locErr
	}
	s.locDescribed = true
	loc := s.identities[sources.LOC]
	g, err := s.fetch.FetchRDF(ctx, sources.LOCDocument(loc.IRI, s.cfg.LOCProbeSuffix))
	if err != nil {
		s.log.Warnf("cannot retrieve LOC description: %v", err)
		s.locErr = err
		return err
	}
	s.identities[sources.LOC] = sources.DescribeLOC(g, loc.IRI)
	return nil
}

// classify runs the field classifier. Subject headings are marked
// unimplemented. A retrieved LOC description stands in for a record the
// fields cannot classify.
func (s *Session) classify(loc *sources.Identity) authority.EntityType {
	if sources.IsSubjects(loc.IRI, s.cfg.Prefixes) {
		s.warn(ErrUnimplementedEntity, fmt.Errorf("subject heading %s", loc.IRI))
		return authority.Unimplemented
	}
	entity := s.ex.Classify()
	if entity == authority.Unknown && s.locDescribed && s.locErr == nil {
		entity = fromLOC(loc)
	}
	if entity == authority.Unknown {
		s.log.Warn("unclassified entity")
		s.warn(ErrUnclassifiedEntity, nil)
	}
	return entity
}

// fromLOC maps MADS/RDF flags to an entity type.
func fromLOC(loc *sources.Identity) authority.EntityType {
	switch {
	case loc.IsPerson:
		return authority.Person
	case loc.IsNameTitle:
		return authority.NameTitle
	case loc.IsCorporation:
		return authority.Corporation
	case loc.IsConference:
		return authority.Conference
	case loc.IsGeographic:
		return authority.Geographic
	case loc.IsUniformTitle:
		return authority.UniformTitle
	default:
		return authority.Unknown
	}
}

// resolveVIAF uses a VIAF IRI from the record, or the VIAF relation of the
// LOC description.
func (s *Session) resolveVIAF(ctx context.Context, entity authority.EntityType) *sources.Identity {
	iri := sources.EmbeddedIRI(s.ex.Fields(s.cfg.Fields.AuthVIAF), sources.VIAFPattern)
	var cause error = errors.New("no VIAF IRI in record")
	if iri == "" && s.cfg.GetVIAF {
		if err := s.describeLOC(ctx); err != nil {
			cause = err
		} else if iri = s.identities[sources.LOC].Link(sources.VIAF); iri == "" {
			cause = errors.New("no VIAF relation in LOC description")
		}
	}
	viaf := sources.New(sources.VIAF, iri)
	s.identities[sources.VIAF] = viaf
	if !viaf.Resolved() {
		s.log.Debug("failed to resolve VIAF IRI")
		s.warn(ErrUnresolvedIdentity, fmt.Errorf("viaf: %w", cause))
		return viaf
	}
	if entity == authority.Person && s.cfg.GetLOC && s.cfg.GetVIAF {
		_ = s.describeVIAF(ctx)
	}
	return s.identities[sources.VIAF]
}

// describeVIAF retrieves the VIAF cluster once.
func (s *Session) describeVIAF(ctx context.Context) error {
	if s.viafDescribed {
		return s.viafErr
	}
	s.viafDescribed = true
	viaf := s.identities[sources.VIAF]
	if !viaf.Resolved() {
		s.viafErr = errors.New("VIAF unresolved")
		return s.viafErr
	}
	g, err := s.fetch.FetchRDF(ctx, sources.VIAFDocument(viaf.IRI))
	if err != nil {
		s.log.Warnf("cannot retrieve VIAF description: %v", err)
		s.viafErr = err
		return err
	}
	s.identities[sources.VIAF] = sources.DescribeVIAF(g, viaf.IRI)
	return nil
}

// resolveISNI uses an ISNI IRI from the record, or the ISNI relation of the
// VIAF description. The result always carries the /isni/ segment.
func (s *Session) resolveISNI(ctx context.Context) *sources.Identity {
	iri := sources.EmbeddedIRI(s.ex.Fields(s.cfg.Fields.AuthISNI), sources.ISNIPattern)
	var cause error = errors.New("no ISNI IRI in record")
	if iri == "" && s.cfg.GetISNI {
		if err := s.describeVIAF(ctx); err != nil {
			cause = err
		} else if iri = s.identities[sources.VIAF].Link(sources.ISNI); iri == "" {
			cause = errors.New("no ISNI relation in VIAF description")
		}
	}
	isni := sources.New(sources.ISNI, sources.NormalizeISNI(iri))
	s.identities[sources.ISNI] = isni
	if !isni.Resolved() {
		s.log.Debug("failed to resolve ISNI IRI")
		s.warn(ErrUnresolvedIdentity, fmt.Errorf("isni: %w", cause))
	}
	return isni
}

// resolveOCLC reads the OCLC control number field.
func (s *Session) resolveOCLC() *sources.Identity {
	oclc := sources.New(sources.OCLC, sources.OCLCFromControlNumber(s.ex.Fields(s.cfg.Fields.AuthOCLC), s.cfg.Prefixes))
	s.identities[sources.OCLC] = oclc
	if !oclc.Resolved() {
		s.warn(ErrUnresolvedIdentity, fmt.Errorf("oclc: no control number in field %s", s.cfg.Fields.AuthOCLC))
	}
	return oclc
}

package graph

// Namespaces of the vocabularies used in authority graphs.
const (
	RDFNamespace    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace   = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace    = "http://www.w3.org/2002/07/owl#"
	SKOSNamespace   = "http://www.w3.org/2004/02/skos/core#"
	FOAFNamespace   = "http://xmlns.com/foaf/0.1/"
	SchemaNamespace = "http://schema.org/"
	MADSNamespace   = "http://www.loc.gov/mads/rdf/v1#"
)

// Core predicates.
const (
	RDFType     = RDFNamespace + "type"
	RDFSLabel   = RDFSNamespace + "label"
	RDFSSeeAlso = RDFSNamespace + "seeAlso"
	OWLSameAs   = OWLNamespace + "sameAs"
)

// SKOS terms, used by LOC descriptions.
const (
	SKOSPrefLabel  = SKOSNamespace + "prefLabel"
	SKOSExactMatch = SKOSNamespace + "exactMatch"
	SKOSCloseMatch = SKOSNamespace + "closeMatch"
)

// FOAF terms.
const (
	FOAFAgent        = FOAFNamespace + "Agent"
	FOAFPerson       = FOAFNamespace + "Person"
	FOAFOrganization = FOAFNamespace + "Organization"
	FOAFName         = FOAFNamespace + "name"
	FOAFFamilyName   = FOAFNamespace + "familyName"
	FOAFFirstName    = FOAFNamespace + "firstName"
)

// schema.org terms.
const (
	SchemaThing         = SchemaNamespace + "Thing"
	SchemaPerson        = SchemaNamespace + "Person"
	SchemaOrganization  = SchemaNamespace + "Organization"
	SchemaEvent         = SchemaNamespace + "Event"
	SchemaPlace         = SchemaNamespace + "Place"
	SchemaCreativeWork  = SchemaNamespace + "CreativeWork"
	SchemaTitle         = SchemaNamespace + "title"
	SchemaName          = SchemaNamespace + "name"
	SchemaFamilyName    = SchemaNamespace + "familyName"
	SchemaGivenName     = SchemaNamespace + "givenName"
	SchemaSameAs        = SchemaNamespace + "sameAs"
	SchemaExampleOfWork = SchemaNamespace + "exampleOfWork"
	SchemaCreator       = SchemaNamespace + "creator"
	SchemaContributor   = SchemaNamespace + "contributor"
	SchemaEditor        = SchemaNamespace + "editor"
)

// MADS/RDF terms.
const (
	MADSPersonalName              = MADSNamespace + "PersonalName"
	MADSNameTitle                 = MADSNamespace + "NameTitle"
	MADSCorporateName             = MADSNamespace + "CorporateName"
	MADSConferenceName            = MADSNamespace + "ConferenceName"
	MADSTitle                     = MADSNamespace + "Title"
	MADSGeographic                = MADSNamespace + "Geographic"
	MADSDeprecatedAuthority       = MADSNamespace + "DeprecatedAuthority"
	MADSAuthoritativeLabel        = MADSNamespace + "authoritativeLabel"
	MADSHasExactExternalAuthority = MADSNamespace + "hasExactExternalAuthority"
	MADSHasCloseExternalAuthority = MADSNamespace + "hasCloseExternalAuthority"
	MADSIdentifiesRWO             = MADSNamespace + "identifiesRWO"
)

// Prefixes maps the customary prefix to each namespace.
var Prefixes = map[string]string{
	"rdf":     RDFNamespace,
	"rdfs":    RDFSNamespace,
	"owl":     OWLNamespace,
	"skos":    SKOSNamespace,
	"foaf":    FOAFNamespace,
	"schema":  SchemaNamespace,
	"madsrdf": MADSNamespace,
}

// Package config holds the process wide resolution settings. A Config is
// read-only once loaded and passed explicitly to every resolution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/miku/marc2ld"
	"gopkg.in/yaml.v3"
)

// Prefixes are the IRI namespaces used to mint or derive identifiers.
type Prefixes struct {
	// LibAuth is the local library namespace, the record id is appended.
	LibAuth string `yaml:"lib_auth"`
	// LOCNames is the id.loc.gov names authority namespace.
	LOCNames string `yaml:"loc_names"`
	// LOCSubjects is the id.loc.gov subject headings namespace.
	LOCSubjects string `yaml:"loc_subjects"`
	// OCLC is the WorldCat namespace for OCLC control numbers.
	OCLC string `yaml:"oclc"`
	// OCLCIdentities is the WorldCat identities namespace.
	OCLCIdentities string `yaml:"oclc_identities"`
}

// Fields names the MARC tags that carry identifiers.
type Fields struct {
	AuthID   string `yaml:"auth_id"`
	AuthLOC  string `yaml:"auth_loc"`
	AuthVIAF string `yaml:"auth_viaf"`
	AuthISNI string `yaml:"auth_isni"`
	AuthOCLC string `yaml:"auth_oclc"`
}

// Config for resolution sessions.
type Config struct {
	Prefixes Prefixes `yaml:"prefixes"`
	Fields   Fields   `yaml:"fields"`
	// GetLOC retrieves the LOC RDF description and prefers its labels.
	GetLOC bool `yaml:"get_loc"`
	// GetVIAF asks the LOC description for a VIAF link, if the record has none.
	GetVIAF bool `yaml:"get_viaf"`
	// GetISNI asks the VIAF description for an ISNI link, if the record has none.
	GetISNI bool `yaml:"get_isni"`
	// GetOCLC walks the OCLC identity and its creative works.
	GetOCLC bool `yaml:"get_oclc"`
	// OCLCAuthToWorks attributes roles and generic works for each creative
	// work; requires one more retrieval per work.
	OCLCAuthToWorks bool `yaml:"oclc_auth2works"`
	UseFOAF         bool `yaml:"use_foaf"`
	UseSchema       bool `yaml:"use_schema"`
	// LOCProbeSuffix is appended to a derived LOC IRI for the existence probe.
	LOCProbeSuffix string `yaml:"loc_probe_suffix"`
	// Timeout per HTTP request.
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	// Workers is the number of records resolved in parallel by the driver.
	Workers int `yaml:"workers"`
}

// Default returns a config with the usual LOC, VIAF and WorldCat namespaces
// and all optional lookups switched off.
func Default() *Config {
	return &Config{
		Prefixes: Prefixes{
			LibAuth:        "http://linked-data.example.org/library/authority/",
			LOCNames:       "http://id.loc.gov/authorities/names/",
			LOCSubjects:    "http://id.loc.gov/authorities/subjects/",
			OCLC:           "http://www.worldcat.org/oclc/",
			OCLCIdentities: "http://www.worldcat.org/identities/",
		},
		Fields: Fields{
			AuthID:   "001",
			AuthLOC:  "010",
			AuthVIAF: "024",
			AuthISNI: "024",
			AuthOCLC: "035",
		},
		UseFOAF:        true,
		UseSchema:      true,
		LOCProbeSuffix: ".rdf",
		Timeout:        30 * time.Second,
		UserAgent:      fmt.Sprintf("%s/%s", marc2ld.AppName, marc2ld.Version),
		Workers:        4,
	}
}

// DefaultPath returns the config file location under XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(marc2ld.AppName, "config.yaml"))
}

// Load reads a YAML file on top of the defaults. A missing file at the
// default location is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		path = p
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks prefixes and tags.
func (c *Config) Validate() error {
	prefixes := map[string]string{
		"prefixes.lib_auth":        c.Prefixes.LibAuth,
		"prefixes.loc_names":       c.Prefixes.LOCNames,
		"prefixes.loc_subjects":    c.Prefixes.LOCSubjects,
		"prefixes.oclc":            c.Prefixes.OCLC,
		"prefixes.oclc_identities": c.Prefixes.OCLCIdentities,
	}
	for k, v := range prefixes {
		u, err := url.Parse(v)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("%s must be an absolute IRI, got %q", k, v)
		}
	}
	tags := map[string]string{
		"fields.auth_id":   c.Fields.AuthID,
		"fields.auth_loc":  c.Fields.AuthLOC,
		"fields.auth_viaf": c.Fields.AuthVIAF,
		"fields.auth_isni": c.Fields.AuthISNI,
		"fields.auth_oclc": c.Fields.AuthOCLC,
	}
	for k, v := range tags {
		if len(v) != 3 {
			return fmt.Errorf("%s must be a three character tag, got %q", k, v)
		}
	}
	if c.OCLCAuthToWorks && !c.GetOCLC {
		return fmt.Errorf("oclc_auth2works requires get_oclc")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

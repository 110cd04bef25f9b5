// Package lookup talks to the external authority services: existence probes
// and retrieval of RDF/XML or RDFa descriptions.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/miku/marc2ld/config"
	"github.com/miku/marc2ld/graph"
	"github.com/sethgrid/pester"
)

// ErrNotFound signals a 404 or 410 from the remote side.
var ErrNotFound = errors.New("not found")

// Doer abstracts https://pkg.go.dev/net/http#Client.Do.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Error is a failed lookup, either on the transport level or with an
// unexpected HTTP status.
type Error struct {
	IRI        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("lookup %s: HTTP %d: %v", e.IRI, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("lookup %s: %v", e.IRI, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client performs lookups. Each request gets its own timeout.
type Client struct {
	Client    Doer
	UserAgent string
	Timeout   time.Duration
}

// New returns a client for a config, backed by pester with a single attempt
// per request; the resolver never retries lookups on its own.
func New(cfg *config.Config) *Client {
	client := pester.New()
	client.MaxRetries = 1
	client.Backoff = pester.ExponentialBackoff
	client.Timeout = cfg.Timeout
	return &Client{
		Client:    client,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	}
}

func (c *Client) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(ctx, c.Timeout)
	}
	return context.WithCancel(ctx)
}

// do sends a request and returns the response for a 2xx status. A 404 or
// 410 is reported as ErrNotFound.
func (c *Client) do(ctx context.Context, method, iri, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, iri, nil)
	if err != nil {
		return nil, &Error{IRI: iri, Err: err}
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &Error{IRI: iri, Err: err}
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		resp.Body.Close()
		return nil, &Error{IRI: iri, StatusCode: resp.StatusCode, Err: ErrNotFound}
	default:
		resp.Body.Close()
		return nil, &Error{IRI: iri, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
}

// Exists probes an IRI with HEAD, falling back to GET for servers that do not
// allow HEAD. A missing resource is not an error.
func (c *Client) Exists(ctx context.Context, iri string) (bool, error) {
	ctx, cancel := c.context(ctx)
	defer cancel()
	resp, err := c.do(ctx, http.MethodHead, iri, "")
	var le *Error
	if errors.As(err, &le) && le.StatusCode == http.StatusMethodNotAllowed {
		resp, err = c.do(ctx, http.MethodGet, iri, "")
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return true, nil
}

// FetchRDF retrieves and parses an RDF/XML document.
func (c *Client) FetchRDF(ctx context.Context, iri string) (*graph.Graph, error) {
	ctx, cancel := c.context(ctx)
	defer cancel()
	resp, err := c.do(ctx, http.MethodGet, iri, "application/rdf+xml")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	g, err := graph.ParseRDFXML(resp.Body)
	if err != nil {
		return nil, &Error{IRI: iri, Err: err}
	}
	return g, nil
}

// FetchRDFa retrieves an HTML page and extracts its RDFa statements,
// resolving relative references against the IRI.
func (c *Client) FetchRDFa(ctx context.Context, iri string) (*graph.Graph, error) {
	ctx, cancel := c.context(ctx)
	defer cancel()
	resp, err := c.do(ctx, http.MethodGet, iri, "text/html")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	g, err := graph.ParseRDFa(resp.Body, iri)
	if err != nil {
		return nil, &Error{IRI: iri, Err: err}
	}
	return g, nil
}

// Package datacite implements a minimal client for the DataCite Metadata
// Store (MDS) REST API: metadata upload, DOI minting and status lookups.
// The client applies no retry or timeout policy of its own; callers control
// cancellation through the context and the injected http.Client.
package datacite

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// DefaultURL is the production MDS endpoint.
const DefaultURL = "https://mds.datacite.org/"

// Client is the subset of the MDS API the DOI provider needs. It is an
// interface so tests and offline installations can substitute a fake.
type Client interface {
	// DOIGet resolves a minted DOI to its registered location URL.
	DOIGet(ctx context.Context, doi string) (string, error)

	// DOIPost mints a DOI, binding it to the given location URL.
	// Metadata must have been uploaded first.
	DOIPost(ctx context.Context, doi, location string) error

	// MetadataGet fetches the most recent metadata for a DOI.
	MetadataGet(ctx context.Context, doi string) (string, error)

	// MetadataPost uploads an XML metadata document.
	MetadataPost(ctx context.Context, document string) error

	// MetadataDelete marks a DOI as inactive.
	MetadataDelete(ctx context.Context, doi string) error
}

// Config holds MDS connection settings.
type Config struct {
	Username string
	Password string
	Prefix   string
	URL      string

	// TestMode routes mint requests through the 10.5072 test prefix.
	TestMode bool

	// HTTPClient overrides http.DefaultClient; set timeouts here.
	HTTPClient *http.Client
}

// MDSClient talks to a DataCite Metadata Store over HTTP.
type MDSClient struct {
	cfg  Config
	http *http.Client
	log  hclog.Logger
}

var _ Client = (*MDSClient)(nil)

// NewMDSClient creates an MDS client from cfg.
func NewMDSClient(cfg Config, log hclog.Logger) *MDSClient {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &MDSClient{cfg: cfg, http: httpClient, log: log}
}

func (c *MDSClient) DOIGet(ctx context.Context, doi string) (string, error) {
	return c.request(ctx, http.MethodGet, "doi/"+doi, "", "")
}

func (c *MDSClient) DOIPost(ctx context.Context, doi, location string) error {
	if c.cfg.TestMode {
		doi = "10.5072" + strings.TrimPrefix(doi, c.cfg.Prefix)
	}
	body := fmt.Sprintf("doi=%s\r\nurl=%s", doi, location)
	_, err := c.request(ctx, http.MethodPost, "doi", body,
		"text/plain;charset=UTF-8")
	return err
}

func (c *MDSClient) MetadataGet(ctx context.Context, doi string) (string, error) {
	return c.request(ctx, http.MethodGet, "metadata/"+doi, "", "")
}

func (c *MDSClient) MetadataPost(ctx context.Context, document string) error {
	_, err := c.request(ctx, http.MethodPost, "metadata", document,
		"application/xml;charset=UTF-8")
	return err
}

func (c *MDSClient) MetadataDelete(ctx context.Context, doi string) error {
	_, err := c.request(ctx, http.MethodDelete, "metadata/"+doi, "", "")
	return err
}

func (c *MDSClient) request(ctx context.Context, method, path, body, contentType string) (string, error) {
	endpoint, err := url.JoinPath(c.cfg.URL, path)
	if err != nil {
		return "", fmt.Errorf("invalid MDS endpoint: %w", err)
	}
	if c.cfg.TestMode {
		endpoint += "?testMode=true"
	}

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.log.Debug("MDS request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(respBody), statusError(resp.StatusCode, string(respBody))
}

// statusError maps MDS response codes onto the sentinel outcomes.
func statusError(code int, body string) error {
	switch {
	case code == http.StatusNoContent:
		return ErrNoContent
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusGone:
		return ErrGone
	case code >= 200 && code < 300:
		return nil
	default:
		return &RequestError{StatusCode: code, Body: body}
	}
}

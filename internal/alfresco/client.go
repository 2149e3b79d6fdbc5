// ABOUTME: HTTP client for the Alfresco public REST API
// ABOUTME: Built once at startup and injected into every consumer, never a global
package alfresco

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/contentgrid/alfresco-mcp/internal/config"
	"github.com/contentgrid/alfresco-mcp/internal/logging"
)

// Client talks to one Alfresco server with basic-auth credentials.
// Methods are safe for concurrent use.
type Client struct {
	http       *http.Client
	username   string
	password   string
	coreBase   string // .../api/-default-/public/alfresco/versions/1
	searchBase string // .../api/-default-/public/search/versions/1
	discovery  string // .../api/discovery
}

// New builds a Client from cfg. The configured URL may be the bare server
// root, the .../alfresco/api root, or the full .../alfresco/api/-default-/public
// root; all three resolve to the same API endpoints.
func New(cfg *config.Config) *Client {
	transport := http.DefaultTransport
	if !cfg.VerifySSL {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	core, search, discovery := resolveBases(cfg.URL)

	return &Client{
		http: &http.Client{
			Timeout:   cfg.RequestTimeout(),
			Transport: logging.HTTPTransport(transport),
		},
		username:   cfg.Username,
		password:   cfg.Password,
		coreBase:   core,
		searchBase: search,
		discovery:  discovery,
	}
}

func resolveBases(url string) (core, search, discovery string) {
	url = strings.TrimRight(url, "/")
	switch {
	case strings.HasSuffix(url, "/alfresco/api/-default-/public"):
		api := strings.TrimSuffix(url, "/-default-/public")
		return url + "/alfresco/versions/1", url + "/search/versions/1", api + "/discovery"
	case strings.HasSuffix(url, "/alfresco/api"):
		return url + "/-default-/public/alfresco/versions/1",
			url + "/-default-/public/search/versions/1",
			url + "/discovery"
	default:
		return url + "/alfresco/api/-default-/public/alfresco/versions/1",
			url + "/alfresco/api/-default-/public/search/versions/1",
			url + "/alfresco/api/discovery"
	}
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// doJSON executes req and decodes a 2xx JSON body into out (which may be
// nil). Non-2xx responses become a typed *Error.
func (c *Client) doJSON(op string, req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindUnavailable, Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(op, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindServer, StatusCode: resp.StatusCode, Op: op,
			Message: fmt.Sprintf("malformed response body: %v", err)}
	}
	return nil
}

// doRaw executes req and returns the 2xx response body for streaming.
// The caller owns the returned ReadCloser.
func (c *Client) doRaw(op string, req *http.Request) (io.ReadCloser, *http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &Error{Kind: KindUnavailable, Op: op, Err: err}
	}
	if resp.StatusCode >= 400 {
		defer func() { _ = resp.Body.Close() }()
		return nil, nil, c.errorFromResponse(op, resp)
	}
	return resp.Body, resp, nil
}

func (c *Client) errorFromResponse(op string, resp *http.Response) error {
	apiErr := &Error{
		Kind:       kindForStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Op:         op,
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		var envelope apiError
		if json.Unmarshal(body, &envelope) == nil && envelope.Error.BriefSummary != "" {
			apiErr.Message = envelope.Error.BriefSummary
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

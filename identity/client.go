package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hostctl/hostctl/hosting"
)

// DefaultEndpoint is the identity API origin used when no override is given.
const DefaultEndpoint = "https://identitytoolkit.googleapis.com"

// HTTPClient http client interface for API calls
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a typed client for the identity service's project
// configuration API.
type Client struct {
	endpoint   string
	authToken  string
	httpClient HTTPClient
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport used for API calls.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithEndpoint overrides the identity API origin.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithAuthToken sets the bearer token attached to every request.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// NewClient creates a new identity API client.
func NewClient(opts ...Option) *Client {
	httpTransport := http.DefaultTransport.(*http.Transport).Clone()
	httpTransport.MaxIdleConns = 5

	c := &Client{
		endpoint: DefaultEndpoint,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: httpTransport,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// projectConfig is the subset of the identity project configuration this
// client reads and writes.
type projectConfig struct {
	AuthorizedDomains []string `json:"authorizedDomains"`
}

// GetAuthorizedDomains returns the ordered list of domains authorized
// for identity operations on a project.
func (c *Client) GetAuthorizedDomains(ctx context.Context, project string) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, "/admin/v2/projects/"+project+"/config", nil, nil)
	if err != nil {
		return nil, err
	}

	var config projectConfig
	if err := json.Unmarshal(body, &config); err != nil {
		return nil, err
	}

	return config.AuthorizedDomains, nil
}

// UpdateAuthorizedDomains replaces the authorized domain list of a
// project.
func (c *Client) UpdateAuthorizedDomains(ctx context.Context, project string, domains []string) error {
	query := url.Values{}
	query.Set("update_mask", "authorizedDomains")

	_, err := c.do(ctx, http.MethodPatch, "/admin/v2/projects/"+project+"/config", query, projectConfig{AuthorizedDomains: domains})
	return err
}

// do performs a single API request and returns the raw response body,
// mapping non-2xx statuses the same way the hosting client does.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(data)
	}

	reqURL := c.endpoint + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, payload)
	if err != nil {
		return nil, err
	}
	if c.authToken != "" {
		req.Header.Add("authorization", "Bearer "+c.authToken)
	}
	req.Header.Add("content-type", "application/json")

	log.Debugf("identity api request %s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, hosting.NewRequestError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

package hosting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultEndpoint is the hosting API origin used when no override is given.
	DefaultEndpoint = "https://firebasehosting.googleapis.com"

	apiVersion = "v1beta1"

	// listPageSize is the number of items requested per page on list endpoints.
	listPageSize = 10
)

// HTTPClient http client interface for API calls
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a typed client for the hosting REST API. A zero value is not
// usable, use NewClient.
type Client struct {
	endpoint   string
	authToken  string
	httpClient HTTPClient
	newBackOff func() backoff.BackOff
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport used for API calls.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithEndpoint overrides the hosting API origin.
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

// WithBackOff sets the wait strategy used between operation poll attempts.
// The factory is invoked once per polled operation.
func WithBackOff(factory func() backoff.BackOff) Option {
	return func(c *Client) {
		c.newBackOff = factory
	}
}

// NewClient creates a new hosting API client.
func NewClient(opts ...Option) *Client {
	httpTransport := http.DefaultTransport.(*http.Transport).Clone()
	httpTransport.MaxIdleConns = 5

	c := &Client{
		endpoint: DefaultEndpoint,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: httpTransport,
		},
		newBackOff: defaultBackOff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 5 * time.Minute
	return b
}

// do performs a single API request and returns the raw response body.
// Non-2xx statuses are mapped to *RequestError carrying the vendor message.
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

	log.Debugf("hosting api request %s %s", method, path)

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
		return nil, NewRequestError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// notFound reports whether err is a hosting API 404 response.
func notFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}

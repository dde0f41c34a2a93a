package hosting

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing
type mockHTTPClient struct {
	code    int
	resBody string
	reqBody string
	err     error

	lastRequest *http.Request
}

func (c *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if c.err != nil {
		return nil, c.err
	}

	c.lastRequest = req
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		c.reqBody = string(body)
	}

	return &http.Response{
		StatusCode: c.code,
		Body:       io.NopCloser(strings.NewReader(c.resBody)),
	}, nil
}

type mockResponse struct {
	code int
	body string
}

// sequenceHTTPClient replays a fixed list of responses in request order,
// recording every request and body it served.
type sequenceHTTPClient struct {
	responses []mockResponse
	requests  []*http.Request
	reqBodies []string
}

func (c *sequenceHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if len(c.requests) >= len(c.responses) {
		return nil, fmt.Errorf("unexpected request %s %s", req.Method, req.URL)
	}

	reqBody := ""
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		reqBody = string(body)
	}

	res := c.responses[len(c.requests)]
	c.requests = append(c.requests, req)
	c.reqBodies = append(c.reqBodies, reqBody)

	return &http.Response{
		StatusCode: res.code,
		Body:       io.NopCloser(strings.NewReader(res.body)),
	}, nil
}

// newTestClient builds a client over the given transport that never
// sleeps between operation poll attempts.
func newTestClient(httpClient HTTPClient) *Client {
	return NewClient(
		WithHTTPClient(httpClient),
		WithBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
	)
}

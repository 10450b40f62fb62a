package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"

	"github.com/nomgrid/nomgrid/pkg/identity"
)

// HTTPClient drives the in-process test server over real HTTP semantics.
type HTTPClient struct {
	handler http.Handler
}

// HTTPResponse is a recorded response with decoding helpers.
type HTTPResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// NewHTTPClient creates a client around an in-process handler.
func NewHTTPClient(handler http.Handler) *HTTPClient {
	return &HTTPClient{handler: handler}
}

// RequestOption mutates an outgoing test request.
type RequestOption func(*http.Request)

// WithJSONBody attaches a JSON-encoded body.
func WithJSONBody(v any) RequestOption {
	return func(req *http.Request) {
		data, _ := json.Marshal(v)
		req.Body = nopCloser{bytes.NewReader(data)}
		req.ContentLength = int64(len(data))
		req.Header.Set(echoHeaderContentType, "application/json")
	}
}

// WithIdentity sets the gateway identity headers for the caller.
func WithIdentity(userID, projectID uuid.UUID, sessionID string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(identity.HeaderUserID, userID.String())
		req.Header.Set(identity.HeaderProjectID, projectID.String())
		if sessionID != "" {
			req.Header.Set(identity.HeaderSessionID, sessionID)
		}
	}
}

// WithHeader sets an arbitrary request header.
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

const echoHeaderContentType = "Content-Type"

// Request performs a request against the in-process handler.
func (c *HTTPClient) Request(method, path string, opts ...RequestOption) *HTTPResponse {
	req := httptest.NewRequest(method, path, nil)
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	return &HTTPResponse{
		StatusCode: rec.Code,
		Body:       rec.Body.Bytes(),
		Headers:    rec.Header(),
	}
}

// GET performs a GET request
func (c *HTTPClient) GET(path string, opts ...RequestOption) *HTTPResponse {
	return c.Request(http.MethodGet, path, opts...)
}

// POST performs a POST request
func (c *HTTPClient) POST(path string, opts ...RequestOption) *HTTPResponse {
	return c.Request(http.MethodPost, path, opts...)
}

// PUT performs a PUT request
func (c *HTTPClient) PUT(path string, opts ...RequestOption) *HTTPResponse {
	return c.Request(http.MethodPut, path, opts...)
}

// PATCH performs a PATCH request
func (c *HTTPClient) PATCH(path string, opts ...RequestOption) *HTTPResponse {
	return c.Request(http.MethodPatch, path, opts...)
}

// DELETE performs a DELETE request
func (c *HTTPClient) DELETE(path string, opts ...RequestOption) *HTTPResponse {
	return c.Request(http.MethodDelete, path, opts...)
}

// JSON unmarshals the response body into v
func (r *HTTPResponse) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// String returns the response body as a string
func (r *HTTPResponse) String() string {
	return string(r.Body)
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }

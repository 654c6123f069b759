package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Envelope mirrors the JSON body every API response is wrapped in.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

// ErrorCode returns the error code, or "" on success.
func (e Envelope) ErrorCode() string {
	if e.Error == nil {
		return ""
	}
	return e.Error.Code
}

// APIResponse is a recorded response with its decoded envelope.
type APIResponse struct {
	Status   int
	Header   http.Header
	Body     []byte
	Envelope Envelope
}

// APIClient sends requests straight into an http.Handler.
type APIClient struct {
	t       *testing.T
	handler http.Handler
	prefix  string
}

// NewAPIClient creates a client whose paths are relative to prefix.
func NewAPIClient(t *testing.T, handler http.Handler, prefix string) *APIClient {
	return &APIClient{t: t, handler: handler, prefix: prefix}
}

// Do sends method path with body encoded as JSON when non-nil.
// A string or []byte body is sent verbatim.
func (c *APIClient) Do(method, path string, body any) *APIResponse {
	c.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(c.t, err, "failed to marshal request body")
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, c.prefix+path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	resp := &APIResponse{Status: w.Code, Header: w.Header(), Body: w.Body.Bytes()}
	if len(resp.Body) > 0 {
		require.NoError(c.t, json.Unmarshal(resp.Body, &resp.Envelope), "response is not a JSON envelope: %s", resp.Body)
	}
	return resp
}

// Get sends a GET request.
func (c *APIClient) Get(path string) *APIResponse {
	c.t.Helper()
	return c.Do(http.MethodGet, path, nil)
}

// Post sends a POST request with a JSON body.
func (c *APIClient) Post(path string, body any) *APIResponse {
	c.t.Helper()
	return c.Do(http.MethodPost, path, body)
}

// Put sends a PUT request with a JSON body.
func (c *APIClient) Put(path string, body any) *APIResponse {
	c.t.Helper()
	return c.Do(http.MethodPut, path, body)
}

// Delete sends a DELETE request.
func (c *APIClient) Delete(path string) *APIResponse {
	c.t.Helper()
	return c.Do(http.MethodDelete, path, nil)
}

// DecodeData unmarshals the envelope's data into T.
func DecodeData[T any](t *testing.T, resp *APIResponse) T {
	t.Helper()

	var out T
	require.NotEmpty(t, resp.Envelope.Data, "response has no data: %s", resp.Body)
	require.NoError(t, json.Unmarshal(resp.Envelope.Data, &out))
	return out
}

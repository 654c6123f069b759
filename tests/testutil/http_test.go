package testutil

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_Do(t *testing.T) {
	var gotPath, gotBody, gotContentType string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"name":"Soja"}}`))
	})

	client := NewAPIClient(t, handler, "/api/v1")
	resp := client.Post("/crops", map[string]string{"name": "Soja"})

	assert.Equal(t, "/api/v1/crops", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"name":"Soja"}`, gotBody)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.True(t, resp.Envelope.Success)
	assert.Empty(t, resp.Envelope.ErrorCode())

	data := DecodeData[map[string]string](t, resp)
	assert.Equal(t, "Soja", data["name"])
}

func TestAPIClient_ErrorEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"ERR_NOT_FOUND","message":"Producer not found"}}`))
	})

	resp := NewAPIClient(t, handler, "").Get("/producers/x")

	require.Equal(t, http.StatusNotFound, resp.Status)
	assert.False(t, resp.Envelope.Success)
	assert.Equal(t, "ERR_NOT_FOUND", resp.Envelope.ErrorCode())
}

func TestAPIClient_EmptyBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	resp := NewAPIClient(t, handler, "").Delete("/crops/1")

	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Empty(t, resp.Body)
}

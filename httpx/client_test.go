package httpx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetWrapsResponse(t *testing.T) {
	t.Parallel()

	var seenRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenRequestID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "pong")
	}))
	defer srv.Close()

	client := New(WithTimeout(5 * time.Second))
	defer client.Close()

	res, err := client.Get(context.Background(), srv.URL+"/ping")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.True(t, res.IsSuccess())
	assert.False(t, res.IsError())
	assert.Equal(t, "pong", res.String())
	assert.Equal(t, "text/plain", res.Header().Get("Content-Type"))

	require.NotEmpty(t, seenRequestID, "every request carries an X-Request-ID")
	assert.Equal(t, seenRequestID, res.RequestID())
}

func TestClient_NonSuccessIsNotAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := New()
	defer client.Close()

	res, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err, "status 503 is reported, not returned as error")
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode())
	assert.True(t, res.IsError())
}

func TestClient_PostJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer srv.Close()

	client := New()
	defer client.Close()

	res, err := client.Post(context.Background(), srv.URL, map[string]string{"msg": "hi"})
	require.NoError(t, err)

	var out struct {
		Echo string `json:"echo"`
	}
	require.NoError(t, res.JSON(&out))
	assert.Equal(t, "hi", out.Echo)

	assert.Error(t, res.JSON(&[]int{}), "type mismatch surfaces as a decode error")
}

func TestClient_BaseURLAndHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/things", r.URL.Path)
		assert.Equal(t, "token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "kitbag-test", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(
		WithBaseURL(srv.URL),
		WithHeader("Authorization", "token-123"),
		WithUserAgent("kitbag-test"),
	)
	defer client.Close()

	res, err := client.Get(context.Background(), "/v1/things")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, res.StatusCode())
}

func TestClient_TransferMetadata(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New()
	defer client.Close()

	res, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)

	info := res.Transfer()
	assert.Equal(t, res.RequestID(), info.RequestID)
	assert.Greater(t, info.Total, time.Duration(0))
	assert.GreaterOrEqual(t, info.TimeToFirstByte, time.Duration(0))
	assert.NotEmpty(t, info.Summary())
}

func TestClient_TransportErrorCarriesRequestID(t *testing.T) {
	t.Parallel()

	client := New(WithTimeout(time.Second))
	defer client.Close()

	// Reserved TEST-NET address; nothing listens there.
	_, err := client.Get(context.Background(), "http://192.0.2.1:9/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request ", "error message names the request id")
}

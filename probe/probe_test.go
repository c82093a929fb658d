package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := NewOptions()
	assert.Equal(t, DefaultURL, o.URL)
	assert.Zero(t, o.Timeout)

	// defaults must not leak between instances
	WithHeader("X-A", "1").Apply(o)
	assert.Empty(t, NewOptions().Headers)
}

func TestGetNonEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "smoke", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := NewClient(WithURL(srv.URL), WithHeader("User-Agent", "smoke"))
	res, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, res.NonEmpty())
}

func TestGetEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	res, err := NewClient(WithURL(srv.URL)).Get(context.Background())
	require.NoError(t, err)
	assert.False(t, res.NonEmpty())
}

func TestGetServerErrorIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	res, err := NewClient(WithURL(srv.URL)).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.True(t, res.NonEmpty())
}

func TestGetUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	res, err := NewClient(WithURL(url)).Get(context.Background())
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestGetDoesNotRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(WithURL(srv.URL)).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := NewClient(WithURL(srv.URL), WithTimeout(50*time.Millisecond)).Get(context.Background())
	assert.Error(t, err)
}

func TestNilResultIsEmpty(t *testing.T) {
	var r *Result
	assert.False(t, r.NonEmpty())
}

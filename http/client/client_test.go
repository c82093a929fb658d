package client

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/aura-studio/smoke/handler"
	smokehttp "github.com/aura-studio/smoke/http"
	"github.com/aura-studio/smoke/logging"
	"github.com/aura-studio/smoke/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type stubProber struct{}

func (stubProber) Get(ctx context.Context) (*probe.Result, error) {
	return &probe.Result{StatusCode: 200, Body: []byte("ok")}, nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	e := smokehttp.NewEngine(nil,
		handler.WithProber(stubProber{}),
		handler.WithOutput(io.Discard),
		handler.WithLogger(logging.Discard()),
	)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	srv := newServer(t)
	c := NewClient(WithBaseURL(srv.URL + "/"))
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	rsp, err := c.Invoke(ctx, handler.Event{"key": "value"})
	require.NoError(t, err)
	assert.Equal(t, handler.OK(), rsp)

	doc, err := c.Debug(ctx, handler.Event{"key": "value"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", gjson.Get(doc, "response.body").String())

	meta, err := c.Meta(ctx)
	require.NoError(t, err)
	assert.True(t, gjson.Valid(meta))
}

func TestClientUnreachable(t *testing.T) {
	srv := newServer(t)
	url := srv.URL
	srv.Close()

	c := NewClient(WithBaseURL(url))
	assert.Error(t, c.Health(context.Background()))
	_, err := c.Invoke(context.Background(), nil)
	assert.Error(t, err)
}

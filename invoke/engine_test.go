package invoke

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aura-studio/smoke/handler"
	"github.com/aura-studio/smoke/logging"
	"github.com/aura-studio/smoke/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProber struct{ err error }

func (s stubProber) Get(ctx context.Context) (*probe.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &probe.Result{StatusCode: 200, Body: []byte("ok")}, nil
}

func newTestEngine(t *testing.T, p handler.Prober) (*Engine, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	e, err := NewEngine(nil,
		handler.WithOutput(&out),
		handler.WithLogger(logging.Discard()),
		handler.WithProber(p),
	)
	require.NoError(t, err)
	return e, &out
}

func TestEngineInvoke(t *testing.T) {
	e, out := newTestEngine(t, stubProber{})
	assert.True(t, e.IsRunning())

	rsp, err := e.Invoke(context.Background(), handler.Event{"key": "value"})
	require.NoError(t, err)
	assert.Equal(t, handler.OK(), rsp)
	assert.Contains(t, out.String(), "event={'key': 'value'}")
}

func TestEngineInvokeFailure(t *testing.T) {
	probeErr := errors.New("no route to host")
	e, _ := newTestEngine(t, stubProber{err: probeErr})

	rsp, err := e.Invoke(context.Background(), handler.Event{})
	assert.ErrorIs(t, err, probeErr)
	assert.Equal(t, handler.Response{}, rsp)
}

func TestEngineStartStop(t *testing.T) {
	e, out := newTestEngine(t, stubProber{})

	e.Stop()
	assert.False(t, e.IsRunning())
	_, err := e.Invoke(context.Background(), handler.Event{})
	assert.ErrorIs(t, err, ErrStopped)
	assert.Zero(t, out.Len())

	e.Start()
	_, err = e.Invoke(context.Background(), handler.Event{})
	assert.NoError(t, err)
}

func TestEngineOptions(t *testing.T) {
	e, err := NewEngine([]Option{
		WithDebugMode(true),
		WithProbeURL("http://127.0.0.1:1"),
		WithProbeTimeout(time.Second),
	}, handler.WithLogger(logging.Discard()))
	require.NoError(t, err)

	assert.True(t, e.Options.DebugMode)
	assert.Equal(t, "http://127.0.0.1:1", e.Handler.ProbeURL)
	assert.Equal(t, time.Second, e.Handler.ProbeTimeout)
}

func TestCloseWithoutServe(t *testing.T) {
	assert.NotPanics(t, Close)
}

func TestWithConfig(t *testing.T) {
	o := NewOptions(WithConfig([]byte(`
mode:
  debug: true
  verify: true
probe:
  url: https://example.com
  timeout: 3s
`)))
	assert.True(t, o.DebugMode)
	assert.True(t, o.VerifyModules)
	assert.Equal(t, "https://example.com", o.ProbeURL)
	assert.Equal(t, 3*time.Second, o.ProbeTimeout)
}

func TestWithConfigInvalid(t *testing.T) {
	assert.Panics(t, func() { NewOptions(WithConfig([]byte("mode: [unclosed"))) })
	assert.Panics(t, func() { NewOptions(WithConfig([]byte("probe:\n  timeout: soon\n"))) })
}

func TestWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "invoke.yaml")
	require.NoError(t, os.WriteFile(p, []byte("probe:\n  url: http://localhost:9\n"), 0o644))

	o := NewOptions(WithConfigFile(p))
	assert.Equal(t, "http://localhost:9", o.ProbeURL)

	assert.Panics(t, func() { NewOptions(WithConfigFile(filepath.Join(dir, "missing.yaml"))) })
}

func TestDefaultOptionsIsolated(t *testing.T) {
	a := NewOptions(WithDebugMode(true))
	b := NewOptions()
	assert.True(t, a.DebugMode)
	assert.False(t, b.DebugMode)
}

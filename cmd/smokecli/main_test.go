package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aura-studio/smoke/handler"
	smokehttp "github.com/aura-studio/smoke/http"
	"github.com/aura-studio/smoke/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	eventPath, eventJSON, debug = "", "", false

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func probeServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLocal(t *testing.T) {
	srv := probeServer(t, "<html>")

	out, _, err := run(t, "local", "--probe-url", srv.URL, "--event-json", `{"key":"value"}`)
	require.NoError(t, err)
	assert.Contains(t, out, handler.FrameHeader)
	assert.Contains(t, out, handler.ConfirmationLine)
	assert.Contains(t, out, "event={'key': 'value'}")
	assert.Contains(t, out, `{statusCode: 200, body: "hello world"}`)
}

func TestLocalEventFile(t *testing.T) {
	srv := probeServer(t, "")
	p := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"a": 1}`), 0o644))

	out, _, err := run(t, "local", "--probe-url", srv.URL, "--event", p)
	require.NoError(t, err)
	assert.NotContains(t, out, handler.ConfirmationLine)
	assert.Contains(t, out, "event={'a': 1}")
}

func TestLocalProbeFailure(t *testing.T) {
	srv := probeServer(t, "x")
	url := srv.URL
	srv.Close()

	out, _, err := run(t, "local", "--probe-url", url)
	assert.Error(t, err)
	assert.NotContains(t, out, handler.EventPrefix)
}

func TestLocalBadEvent(t *testing.T) {
	_, _, err := run(t, "local", "--event-json", `[1]`)
	assert.Error(t, err)

	_, _, err = run(t, "local", "--event-json", `{}`, "--event", "x.json")
	assert.Error(t, err)
}

func TestCall(t *testing.T) {
	probe := probeServer(t, "ok")
	dev := httptest.NewServer(smokehttp.NewEngine(
		[]smokehttp.Option{smokehttp.WithProbeURL(probe.URL)},
		handler.WithLogger(logging.Discard()),
		handler.WithOutput(&bytes.Buffer{}),
	))
	t.Cleanup(dev.Close)

	out, _, err := run(t, "call", "--url", dev.URL, "--event-json", `{"key":"value"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `{statusCode: 200, body: "hello world"}`)
}

func TestRequiredFlags(t *testing.T) {
	_, _, err := run(t, "invoke")
	assert.EqualError(t, err, "--function is required")

	_, _, err = run(t, "send")
	assert.EqualError(t, err, "--queue is required")
}

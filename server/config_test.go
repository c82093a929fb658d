package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aura-studio/smoke/http"
	"github.com/aura-studio/smoke/invoke"
	"github.com/aura-studio/smoke/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lambdaYAML = `
lambda: sqs
invoke:
  mode:
    debug: true
  probe:
    url: http://invoke.local
sqs:
  partialRetry: true
  responseQueue: https://sqs.local/replies
  probe:
    timeout: 3s
http:
  address: ":9000"
  cors: true
`

func TestWithServeConfig(t *testing.T) {
	o := NewOptions(WithServeConfig([]byte(lambdaYAML)))
	assert.Equal(t, LambdaSQS, o.Lambda)

	inv := invoke.NewOptions(o.Invoke...)
	assert.True(t, inv.DebugMode)
	assert.Equal(t, "http://invoke.local", inv.ProbeURL)

	so := sqs.NewOptions(o.Sqs...)
	assert.True(t, so.PartialRetry)
	assert.Equal(t, "https://sqs.local/replies", so.ResponseQueueURL)
	assert.Equal(t, "3s", so.ProbeTimeout.String())

	ho := http.NewOptions(o.Http...)
	assert.Equal(t, ":9000", ho.Address)
	assert.True(t, ho.CorsMode)
}

func TestDefaultsToInvoke(t *testing.T) {
	o := NewOptions(WithServeConfig([]byte("http:\n  debug: true\n")))
	assert.Equal(t, LambdaInvoke, o.Lambda)
	assert.Empty(t, o.Invoke)
	assert.Empty(t, o.Sqs)
	assert.Len(t, o.Http, 1)
}

func TestWithServeConfigInvalid(t *testing.T) {
	assert.Panics(t, func() { WithServeConfig([]byte("lambda: [")) })
	assert.Panics(t, func() { WithServeConfig([]byte("lambda: grpc")) })
	assert.Panics(t, func() { WithServeConfigFile(filepath.Join(t.TempDir(), "missing.yaml")) })
}

func TestOptionOverrides(t *testing.T) {
	o := NewOptions(
		WithServeConfig([]byte("lambda: sqs\n")),
		WithLambda(LambdaHTTP),
		WithHttpOptions(http.WithAddress(":7000")),
	)
	assert.Equal(t, LambdaHTTP, o.Lambda)
	assert.Equal(t, ":7000", http.NewOptions(o.Http...).Address)
}

func TestFindDefaultServeConfigFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = FindDefaultServeConfigFile()
	assert.Error(t, err)

	require.NoError(t, os.WriteFile("server.yml", []byte("lambda: http\n"), 0o644))
	p, err := FindDefaultServeConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "server.yml", filepath.Base(p))

	require.NoError(t, os.WriteFile("lambda.yaml", []byte("lambda: sqs\n"), 0o644))
	p, err = FindDefaultServeConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "lambda.yaml", filepath.Base(p))
	assert.Equal(t, LambdaSQS, NewOptions(WithServeConfigFile(p)).Lambda)
}

func TestServeUnknownLambda(t *testing.T) {
	err := Serve([]Option{WithLambda("grpc")})
	assert.Error(t, err)
}

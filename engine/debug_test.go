package engine

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSafe(t *testing.T) {
	assert.NoError(t, DoSafe(func() {}))

	err := DoSafe(func() { panic("boom") })
	require.Error(t, err)
	assert.Equal(t, "panic: boom", err.Error())
}

func TestDoDebugCapturesOutput(t *testing.T) {
	stdout, stderr, err := DoDebug(func() {
		fmt.Println("to stdout")
		fmt.Fprintln(os.Stderr, "to stderr")
	})
	require.NoError(t, err)
	assert.Equal(t, "to stdout\n", stdout)
	assert.Equal(t, "to stderr\n", stderr)
}

func TestDoDebugRestoresFiles(t *testing.T) {
	origStdout, origStderr := os.Stdout, os.Stderr

	_, _, err := DoDebug(func() { panic("inner") })
	assert.EqualError(t, err, "panic: inner")

	assert.Same(t, origStdout, os.Stdout)
	assert.Same(t, origStderr, os.Stderr)
}

func TestDoDebugKeepsOutputBeforePanic(t *testing.T) {
	stdout, _, err := DoDebug(func() {
		fmt.Print("partial")
		panic("late")
	})
	assert.Error(t, err)
	assert.Equal(t, "partial", stdout)
}

func TestStdoutFollowsCapture(t *testing.T) {
	stdout, stderr, err := DoDebug(func() {
		_, _ = Stdout().Write([]byte("out\n"))
		_, _ = Stderr().Write([]byte("err\n"))
	})
	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout)
	assert.Equal(t, "err\n", stderr)
}

func TestStdoutConcurrentWithCapture(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _, err := DoDebug(func() {
				_, _ = Stdout().Write([]byte("captured\n"))
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := Stderr().Write([]byte{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

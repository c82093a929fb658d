// Package engine holds the panic and output-capture helpers used when the
// handler runs outside the platform.
package engine

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	// captureMu serializes DoDebug; os.Stdout and os.Stderr are process globals.
	captureMu sync.Mutex
	// streamMu guards swapping the process streams against writers from
	// Stdout and Stderr.
	streamMu sync.RWMutex
)

type streamWriter func() *os.File

func (w streamWriter) Write(p []byte) (int, error) {
	streamMu.RLock()
	defer streamMu.RUnlock()
	return w().Write(p)
}

// Stdout returns a writer to the current os.Stdout, resolved on every write,
// so DoDebug can capture it.
func Stdout() io.Writer {
	return streamWriter(func() *os.File { return os.Stdout })
}

// Stderr is Stdout for os.Stderr.
func Stderr() io.Writer {
	return streamWriter(func() *os.File { return os.Stderr })
}

// DoSafe runs f and converts a panic into an error.
func DoSafe(f func()) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic: %v", v)
		}
	}()

	f()

	return nil
}

// DoDebug runs f while teeing the process stdout and stderr into buffers.
// A panic inside f is returned as err together with whatever was captured.
func DoDebug(f func()) (stdout string, stderr string, err error) {
	captureMu.Lock()
	defer captureMu.Unlock()

	// keep backup of the real file
	originStdout := os.Stdout
	originStderr := os.Stderr

	stdoutPipeReader, stdoutPipeWriter, err := os.Pipe()
	if err != nil {
		return "", "", err
	}
	stderrPipeReader, stderrPipeWriter, err := os.Pipe()
	if err != nil {
		stdoutPipeReader.Close()
		stdoutPipeWriter.Close()
		return "", "", err
	}

	streamMu.Lock()
	os.Stdout = stdoutPipeWriter
	os.Stderr = stderrPipeWriter
	streamMu.Unlock()

	var (
		stdoutBuf bytes.Buffer
		stderrBuf bytes.Buffer
	)
	copyErrCh := make(chan error, 2)
	go func() {
		_, err := io.Copy(io.MultiWriter(&stdoutBuf, originStdout), stdoutPipeReader)
		copyErrCh <- err
	}()
	go func() {
		_, err := io.Copy(io.MultiWriter(&stderrBuf, originStderr), stderrPipeReader)
		copyErrCh <- err
	}()

	panicErr := DoSafe(f)

	streamMu.Lock()
	os.Stdout = originStdout
	os.Stderr = originStderr
	stdoutPipeWriter.Close()
	stderrPipeWriter.Close()
	streamMu.Unlock()

	// copy goroutines finish once the write ends are closed
	for i := 0; i < 2; i++ {
		if copyErr := <-copyErrCh; copyErr != nil && err == nil {
			err = copyErr
		}
	}
	stdoutPipeReader.Close()
	stderrPipeReader.Close()

	if panicErr != nil {
		err = panicErr
	}

	return stdoutBuf.String(), stderrBuf.String(), err
}

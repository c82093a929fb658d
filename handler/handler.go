// Package handler implements the invocation handler: it builds the table
// self-check, performs the outbound HTTP self-check, echoes the event to the
// diagnostic output and returns the fixed response.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/aura-studio/smoke/engine"
	"github.com/aura-studio/smoke/frame"
	"github.com/aura-studio/smoke/logging"
	"github.com/aura-studio/smoke/probe"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	StatusOK = 200
	BodyOK   = "hello world"

	FrameHeader      = "DataFrame:"
	ConfirmationLine = "Got a response from probe call - http client lib works"
	EventPrefix      = "event="
)

// Event is the invocation payload, passed through untouched.
type Event map[string]any

// UnmarshalJSON keeps numbers as json.Number so 1.0 and 1 stay distinct and
// large integers stay exact.
func (e *Event) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	*e = m
	return nil
}

// Response is the fixed-shape invocation result.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// OK returns the response every successful invocation produces.
func OK() Response {
	return Response{StatusCode: StatusOK, Body: BodyOK}
}

// Prober performs the outbound HTTP check.
type Prober interface {
	Get(ctx context.Context) (*probe.Result, error)
}

// Handler is safe for concurrent use; invocations share no mutable state
// besides the serialized diagnostic writer.
type Handler struct {
	*Options
	prober Prober
	log    *logrus.Logger

	mu  sync.Mutex
	out io.Writer
}

func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		Options: NewOptions(opts...),
	}

	h.out = h.Output
	if h.out == nil {
		h.out = engine.Stdout()
	}

	h.log = h.Logger
	if h.log == nil {
		h.log = logging.New(h.DebugMode)
	}

	h.prober = h.Prober
	if h.prober == nil {
		h.prober = probe.NewClient(
			probe.WithURL(h.ProbeURL),
			probe.WithTimeout(h.ProbeTimeout),
		)
	}

	return h
}

// Handle runs one invocation. Any failure of a self-check is returned
// unchanged and no response value is produced.
func (h *Handler) Handle(ctx context.Context, event Event) (Response, error) {
	start := time.Now()
	entry := h.log.WithFields(logrus.Fields{
		"request_id": RequestID(ctx),
		"function":   lambdacontext.FunctionName,
	})

	if h.DebugMode {
		entry.Debugf("[Invoke] Request: %s", Repr(event))
	}

	df, err := frame.SelfCheck()
	if err != nil {
		entry.WithError(err).Error("table self-check failed")
		return Response{}, err
	}
	h.writeLines(FrameHeader, frame.Render(df))

	res, err := h.prober.Get(ctx)
	if err != nil {
		entry.WithError(err).Error("http self-check failed")
		return Response{}, err
	}
	if res.NonEmpty() {
		h.writeLines(ConfirmationLine)
	}
	probeStatus := 0
	if res != nil {
		probeStatus = res.StatusCode
	}

	h.writeLines(EventPrefix + Repr(event))

	rsp := OK()
	entry.WithFields(logrus.Fields{
		"status_code":  rsp.StatusCode,
		"probe_status": probeStatus,
		"latency_ms":   float64(time.Since(start).Nanoseconds()) / 1e6,
	}).Info("invocation finished")

	if h.DebugMode {
		entry.Debugf("[Invoke] Response: %d %s", rsp.StatusCode, rsp.Body)
	}

	return rsp, nil
}

// RequestID returns the platform request id carried by ctx, or a fresh uuid
// when the handler runs outside the platform.
func RequestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}

func (h *Handler) writeLines(lines ...string) {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(strings.TrimRight(line, "\n"))
		b.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := io.WriteString(h.out, b.String()); err != nil {
		h.log.WithError(err).Warn("diagnostic write failed")
	}
}

func (r Response) String() string {
	return fmt.Sprintf("{statusCode: %d, body: %q}", r.StatusCode, r.Body)
}

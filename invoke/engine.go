package invoke

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/aura-studio/smoke/handler"
	"github.com/aura-studio/smoke/logging"
	"github.com/aura-studio/smoke/meta"
	"github.com/sirupsen/logrus"
)

// ErrStopped is returned for invocations reaching a stopped engine.
var ErrStopped = errors.New("invoke: engine is stopped")

// Engine serves direct Lambda invocations with the smoke handler.
type Engine struct {
	*Options
	*handler.Handler
	log     *logrus.Logger
	running atomic.Int32
}

// NewEngine builds the engine. Extra handler options are applied after the
// ones derived from invokeOpts.
func NewEngine(invokeOpts []Option, handlerOpts ...handler.Option) (*Engine, error) {
	o := NewOptions(invokeOpts...)
	log := logging.New(o.DebugMode)

	if o.VerifyModules {
		if err := meta.Collect().Verify(meta.Required...); err != nil {
			return nil, err
		}
	}

	opts := append([]handler.Option{
		handler.WithDebugMode(o.DebugMode),
		handler.WithProbeURL(o.ProbeURL),
		handler.WithProbeTimeout(o.ProbeTimeout),
		handler.WithLogger(log),
	}, handlerOpts...)

	e := &Engine{
		Options: o,
		Handler: handler.NewHandler(opts...),
		log:     log,
	}
	e.running.Store(1)
	return e, nil
}

func (e *Engine) Start() {
	e.running.Store(1)
}

func (e *Engine) Stop() {
	e.running.Store(0)
}

func (e *Engine) IsRunning() bool {
	return e.running.Load() == 1
}

// Invoke is the function registered with the Lambda runtime. Errors are
// returned to the runtime, which reports the invocation as failed.
func (e *Engine) Invoke(ctx context.Context, event handler.Event) (handler.Response, error) {
	if !e.IsRunning() {
		return handler.Response{}, ErrStopped
	}

	rsp, err := e.Handle(ctx, event)
	if err != nil {
		return handler.Response{}, fmt.Errorf("invoke: %w", err)
	}
	return rsp, nil
}

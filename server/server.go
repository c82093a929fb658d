// Package server starts the entry point selected by lambda.yaml.
package server

import (
	"fmt"

	"github.com/aura-studio/smoke/handler"
	"github.com/aura-studio/smoke/http"
	"github.com/aura-studio/smoke/invoke"
	"github.com/aura-studio/smoke/sqs"
)

// Serve blocks in the selected entry point. handlerOpts are passed to the
// handler of whichever mode runs.
func Serve(opts []Option, handlerOpts ...handler.Option) error {
	options := NewOptions(opts...)

	switch options.Lambda {
	case LambdaInvoke:
		return invoke.Serve(options.Invoke, handlerOpts...)
	case LambdaSQS:
		return sqs.Serve(options.Sqs, handlerOpts...)
	case LambdaHTTP:
		return http.Serve(options.Http, handlerOpts...)
	default:
		return fmt.Errorf("server: unknown lambda %q", options.Lambda)
	}
}

func Close() error {
	invoke.Close()
	sqs.Close()
	return http.Close()
}

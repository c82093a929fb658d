package sqs

import (
	"github.com/aura-studio/smoke/handler"
	"github.com/aws/aws-lambda-go/lambda"
)

var engine *Engine

// Serve runs the engine as the handler for SQS-triggered invocations.
func Serve(sqsOpts []Option, handlerOpts ...handler.Option) error {
	e, err := NewEngine(sqsOpts, handlerOpts...)
	if err != nil {
		return err
	}
	engine = e
	lambda.Start(engine.Invoke)
	return nil
}

func Close() {
	if engine != nil {
		engine.Stop()
	}
}

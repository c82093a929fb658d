package invoke

import (
	"github.com/aura-studio/smoke/handler"
	"github.com/aws/aws-lambda-go/lambda"
)

var engine *Engine

// Serve starts the Lambda runtime loop with a new engine. It only returns
// when the engine cannot be built.
func Serve(invokeOpts []Option, handlerOpts ...handler.Option) error {
	e, err := NewEngine(invokeOpts, handlerOpts...)
	if err != nil {
		return err
	}
	engine = e
	lambda.Start(engine.Invoke)
	return nil
}

// Close stops the running engine.
func Close() {
	if engine != nil {
		engine.Stop()
	}
}

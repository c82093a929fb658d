// Package invokecli invokes a deployed smoke function and checks its answer.
package invokecli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aura-studio/smoke/handler"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// FunctionError is returned when the platform reports the invocation failed.
type FunctionError struct {
	Kind    string
	Payload string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("function error (%s): %s", e.Kind, e.Payload)
}

type Client struct {
	*Options
}

func NewClient(opts ...Option) *Client {
	return &Client{
		Options: NewOptions(opts...),
	}
}

// NewDefaultClient builds a client backed by the default AWS credential chain.
func NewDefaultClient(ctx context.Context, opts ...Option) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("invokecli: load aws config: %w", err)
	}
	return NewClient(append([]Option{WithLambdaClient(lambda.NewFromConfig(cfg))}, opts...)...), nil
}

// Call performs a synchronous invocation and decodes the response.
func (c *Client) Call(ctx context.Context, event handler.Event) (handler.Response, error) {
	out, err := c.invoke(ctx, types.InvocationTypeRequestResponse, event)
	if err != nil {
		return handler.Response{}, err
	}

	if out.FunctionError != nil {
		return handler.Response{}, &FunctionError{
			Kind:    aws.ToString(out.FunctionError),
			Payload: string(out.Payload),
		}
	}

	var rsp handler.Response
	if err := json.Unmarshal(out.Payload, &rsp); err != nil {
		return handler.Response{}, fmt.Errorf("invokecli: decode response: %w", err)
	}
	return rsp, nil
}

// Send performs an asynchronous invocation; it returns once the platform
// has queued the event.
func (c *Client) Send(ctx context.Context, event handler.Event) error {
	_, err := c.invoke(ctx, types.InvocationTypeEvent, event)
	return err
}

func (c *Client) invoke(ctx context.Context, kind types.InvocationType, event handler.Event) (*lambda.InvokeOutput, error) {
	if c.LambdaClient == nil {
		return nil, errors.New("invokecli: no lambda client")
	}
	if c.FunctionName == "" {
		return nil, errors.New("invokecli: no function name")
	}

	if event == nil {
		event = handler.Event{}
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("invokecli: encode event: %w", err)
	}

	if _, ok := ctx.Deadline(); !ok && c.DefaultTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.DefaultTimeout)
		defer cancel()
	}

	in := &lambda.InvokeInput{
		FunctionName:   aws.String(c.FunctionName),
		InvocationType: kind,
		Payload:        payload,
	}
	if c.Qualifier != "" {
		in.Qualifier = aws.String(c.Qualifier)
	}

	out, err := c.LambdaClient.Invoke(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("invokecli: lambda invoke failed: %w", err)
	}
	return out, nil
}

// Check verifies rsp is the fixed smoke response.
func Check(rsp handler.Response) error {
	if rsp != handler.OK() {
		return fmt.Errorf("invokecli: unexpected response %s, want %s", rsp, handler.OK())
	}
	return nil
}

// Elapsed runs Call and reports how long it took.
func (c *Client) Elapsed(ctx context.Context, event handler.Event) (handler.Response, time.Duration, error) {
	start := time.Now()
	rsp, err := c.Call(ctx, event)
	return rsp, time.Since(start), err
}

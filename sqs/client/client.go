// Package client publishes smoke events to the queue that triggers the function.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aura-studio/smoke/handler"
	"github.com/aura-studio/smoke/sqs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
)

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
		return nil, fmt.Errorf("client: load aws config: %w", err)
	}
	return NewClient(append([]Option{WithSQSClient(awssqs.NewFromConfig(cfg))}, opts...)...), nil
}

// Send publishes event and returns the queue's message id.
func (c *Client) Send(ctx context.Context, event handler.Event) (string, error) {
	if c.SQSClient == nil {
		return "", errors.New("client: no sqs client")
	}
	if c.QueueURL == "" {
		return "", errors.New("client: no queue url")
	}

	body, err := sqs.EncodeEvent(event)
	if err != nil {
		return "", err
	}

	if _, ok := ctx.Deadline(); !ok && c.DefaultTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.DefaultTimeout)
		defer cancel()
	}

	in := &awssqs.SendMessageInput{
		QueueUrl:    aws.String(c.QueueURL),
		MessageBody: aws.String(body),
	}
	if IsFIFO(c.QueueURL) {
		in.MessageGroupId = aws.String(MessageGroupID)
		in.MessageDeduplicationId = aws.String(uuid.NewString())
	}

	out, err := c.SQSClient.SendMessage(ctx, in)
	if err != nil {
		return "", fmt.Errorf("client: send message: %w", err)
	}
	if out == nil {
		return "", nil
	}
	return aws.ToString(out.MessageId), nil
}

// MessageGroupID groups smoke events on FIFO queues.
const MessageGroupID = "smoke"

func IsFIFO(queueURL string) bool {
	return strings.HasSuffix(queueURL, ".fifo")
}

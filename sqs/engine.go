// Package sqs runs the smoke handler for SQS-triggered invocations, one
// record at a time.
package sqs

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/aura-studio/smoke/handler"
	"github.com/aura-studio/smoke/logging"
	events "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/sirupsen/logrus"
)

type SQSClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type Engine struct {
	*Options
	*handler.Handler
	log       *logrus.Logger
	running   atomic.Int32
	sqsClient SQSClient
}

// NewEngine builds the engine. An AWS client is only created when responses
// are forwarded and none was injected.
func NewEngine(sqsOpts []Option, handlerOpts ...handler.Option) (*Engine, error) {
	o := NewOptions(sqsOpts...)
	log := logging.New(o.DebugMode)

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

	switch {
	case o.SQSClient != nil:
		e.sqsClient = o.SQSClient
	case o.ResponseQueueURL != "":
		cfg, err := config.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("sqs: load aws config: %w", err)
		}
		e.sqsClient = sqs.NewFromConfig(cfg)
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

// Invoke handles one SQS batch. With PartialRetry the failed records are
// returned in BatchItemFailures; otherwise any failure fails the batch so the
// platform retries all of it.
func (e *Engine) Invoke(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse

	for _, msg := range ev.Records {
		if err := e.handleMessage(ctx, msg); err != nil {
			entry := e.log.WithFields(logrus.Fields{
				"message_id": msg.MessageId,
				"error":      err.Error(),
			})
			if e.ErrorSuspend {
				entry.Error("[SQS] suspending batch")
				return resp, err
			}
			entry.Warn("[SQS] message failed")
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: msg.MessageId})
		}
	}

	if !e.PartialRetry && len(resp.BatchItemFailures) > 0 {
		return events.SQSEventResponse{}, fmt.Errorf("sqs: batch item failures: %d", len(resp.BatchItemFailures))
	}
	return resp, nil
}

func (e *Engine) handleMessage(ctx context.Context, msg events.SQSMessage) error {
	if !e.IsRunning() {
		return fmt.Errorf("sqs: engine is stopped")
	}

	event, err := DecodeEvent(msg.Body)
	if err != nil {
		return err
	}

	if e.DebugMode {
		e.log.Debugf("[SQS] Request: %s %s", msg.MessageId, handler.Repr(event))
	}

	rsp, err := e.Handle(ctx, event)
	if err != nil {
		return err
	}

	if e.ResponseQueueURL == "" || e.sqsClient == nil {
		return nil
	}

	body, err := MarshalReply(Reply{MessageID: msg.MessageId, Response: rsp})
	if err != nil {
		return fmt.Errorf("sqs: encode reply: %w", err)
	}
	if _, err := e.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(e.ResponseQueueURL),
		MessageBody: aws.String(body),
	}); err != nil {
		return fmt.Errorf("sqs: send reply: %w", err)
	}

	if e.DebugMode {
		e.log.Debugf("[SQS] Response: %s %s", msg.MessageId, body)
	}
	return nil
}

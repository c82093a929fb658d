package sqs

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aura-studio/smoke/handler"
	"github.com/tidwall/gjson"
)

// Reply is the document forwarded to the response queue.
type Reply struct {
	MessageID string `json:"messageId"`
	handler.Response
}

// DecodeEvent reads a record body: a JSON object, either raw or base64
// encoded.
func DecodeEvent(body string) (handler.Event, error) {
	raw := body
	if !gjson.Valid(raw) {
		b, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, errors.New("sqs: body is neither JSON nor base64")
		}
		raw = string(b)
	}

	if !gjson.Valid(raw) || !gjson.Parse(raw).IsObject() {
		return nil, errors.New("sqs: body is not a JSON object")
	}

	var event handler.Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return nil, fmt.Errorf("sqs: decode body: %w", err)
	}
	return event, nil
}

// EncodeEvent is the inverse of DecodeEvent, producing raw JSON.
func EncodeEvent(event handler.Event) (string, error) {
	if event == nil {
		event = handler.Event{}
	}
	b, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("sqs: encode event: %w", err)
	}
	return string(b), nil
}

func MarshalReply(r Reply) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func UnmarshalReply(body string) (Reply, error) {
	var r Reply
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return Reply{}, err
	}
	return r, nil
}

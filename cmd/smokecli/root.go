package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aura-studio/smoke/handler"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var (
	eventPath string
	eventJSON string
	debug     bool
	timeout   time.Duration
)

// NewRootCmd creates the root 'smokecli' command with persistent flags and subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "smokecli",
		Short:         "Run and check the smoke function",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&eventPath, "event", "", "Path to event JSON file")
	rootCmd.PersistentFlags().StringVar(&eventJSON, "event-json", "", "Event as inline JSON string")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout of the whole command")

	rootCmd.AddCommand(
		newLocalCmd(),
		newInvokeCmd(),
		newSendCmd(),
		newCallCmd(),
		newMetaCmd(),
	)

	return rootCmd
}

// loadEvent reads the event from --event-json or --event; no event is {}.
func loadEvent(path, inline string) (handler.Event, error) {
	var raw []byte
	switch {
	case inline != "" && path != "":
		return nil, errors.New("use either --event or --event-json, not both")
	case inline != "":
		raw = []byte(inline)
	case path != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read event: %w", err)
		}
		raw = b
	default:
		return handler.Event{}, nil
	}

	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return nil, errors.New("event must be a JSON object")
	}

	var event handler.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return event, nil
}

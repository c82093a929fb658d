package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aura-studio/smoke/sqs/client"
	"github.com/spf13/cobra"
)

// newSendCmd creates the 'send' subcommand, which publishes the event to the
// request queue of an SQS-triggered deployment.
func newSendCmd() *cobra.Command {
	var queue string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Publish the event to an SQS queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if queue == "" {
				return errors.New("--queue is required")
			}
			event, err := loadEvent(eventPath, eventJSON)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c, err := client.NewDefaultClient(ctx, client.WithQueueURL(queue))
			if err != nil {
				return err
			}
			id, err := c.Send(ctx, event)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&queue, "queue", "q", "", "Queue URL")
	return cmd
}

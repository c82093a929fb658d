package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aura-studio/smoke/handler"
	"github.com/aura-studio/smoke/logging"
	"github.com/spf13/cobra"
)

// newLocalCmd creates the 'local' subcommand, which runs the handler in-process.
func newLocalCmd() *cobra.Command {
	var (
		probeURL     string
		probeTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "local",
		Short: "Run the handler in this process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := loadEvent(eventPath, eventJSON)
			if err != nil {
				return err
			}

			h := handler.NewHandler(
				handler.WithDebugMode(debug),
				handler.WithProbeURL(probeURL),
				handler.WithProbeTimeout(probeTimeout),
				handler.WithOutput(cmd.OutOrStdout()),
				handler.WithLogger(logging.NewWithOutput(cmd.ErrOrStderr(), debug)),
			)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			rsp, err := h.Handle(ctx, event)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rsp.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&probeURL, "probe-url", "", "Override the URL of the outbound HTTP check")
	cmd.Flags().DurationVar(&probeTimeout, "probe-timeout", 0, "Timeout of the outbound HTTP check")
	return cmd
}

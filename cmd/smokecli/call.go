package main

import (
	"context"
	"fmt"

	httpclient "github.com/aura-studio/smoke/http/client"
	"github.com/spf13/cobra"
)

// newCallCmd creates the 'call' subcommand, which talks to a running local
// development server.
func newCallCmd() *cobra.Command {
	var (
		url        string
		debugRoute bool
	)

	cmd := &cobra.Command{
		Use:   "call",
		Short: "Call the local development server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := loadEvent(eventPath, eventJSON)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c := httpclient.NewClient(httpclient.WithBaseURL(url))
			if err := c.Health(ctx); err != nil {
				return err
			}

			if debugRoute {
				doc, err := c.Debug(ctx, event)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), doc)
				return nil
			}

			rsp, err := c.Invoke(ctx, event)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rsp.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "http://localhost:8080", "Base URL of the server")
	cmd.Flags().BoolVar(&debugRoute, "debug-route", false, "Use /_/invoke and print captured output")
	return cmd
}

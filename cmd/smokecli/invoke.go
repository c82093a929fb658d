package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aura-studio/smoke/invoke/invokecli"
	"github.com/spf13/cobra"
)

// newInvokeCmd creates the 'invoke' subcommand, which calls the deployed
// function and checks the fixed response shape.
func newInvokeCmd() *cobra.Command {
	var (
		function  string
		qualifier string
		async     bool
	)

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Invoke the deployed function",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if function == "" {
				return errors.New("--function is required")
			}
			event, err := loadEvent(eventPath, eventJSON)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c, err := invokecli.NewDefaultClient(ctx,
				invokecli.WithFunctionName(function),
				invokecli.WithQualifier(qualifier),
			)
			if err != nil {
				return err
			}

			if async {
				if err := c.Send(ctx, event); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "queued")
				return nil
			}

			rsp, elapsed, err := c.Elapsed(ctx, event)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", rsp.String(), elapsed)
			return invokecli.Check(rsp)
		},
	}

	cmd.Flags().StringVarP(&function, "function", "f", "", "Function name or ARN")
	cmd.Flags().StringVar(&qualifier, "qualifier", "", "Function version or alias")
	cmd.Flags().BoolVar(&async, "async", false, "Invoke asynchronously and do not wait for the result")
	return cmd
}

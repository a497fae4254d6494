package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify the configured AI API key with a live request",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.aiService()
			if err != nil {
				return err
			}

			ok, message := service.VerifyKey(cmd.Context())
			if ctx.jsonOutput() {
				if err := writeJSON(cmd, map[string]any{
					"provider": service.Provider(),
					"model":    service.Model(),
					"valid":    ok,
					"message":  message,
				}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				kind := statusOK
				if !ok {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine("Provider", statusInfo, service.Provider(), colorize))
				fmt.Fprintln(out, renderStatusLine("Key check", kind, message, colorize))
			}
			if !ok {
				return fmt.Errorf("API key verification failed")
			}
			return nil
		},
	}
}

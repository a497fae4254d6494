package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subweave/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check external tools and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.Check(deps.Requirements(cfg))
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{
					"tools": statuses,
					"ai": map[string]any{
						"provider":   cfg.AI.Provider,
						"model":      cfg.AI.Model,
						"configured": cfg.AI.APIKey != "",
					},
				})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("External tools", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, status := range statuses {
				kind := statusOK
				message := status.Path
				if !status.Available {
					kind = statusError
					if status.Optional {
						kind = statusWarn
					}
					message = status.Detail
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("AI provider", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Provider", statusInfo, cfg.AI.Provider, colorize))
			if cfg.AI.Model != "" {
				fmt.Fprintln(out, renderStatusLine("Model", statusInfo, cfg.AI.Model, colorize))
			}
			keyKind := statusOK
			keyMessage := "API key configured"
			if cfg.AI.APIKey == "" {
				keyKind = statusWarn
				keyMessage = "no API key; translation falls back to the web translator"
			}
			fmt.Fprintln(out, renderStatusLine("API key", keyKind, keyMessage, colorize))

			if missing := deps.Missing(statuses); len(missing) > 0 {
				names := make([]string, 0, len(missing))
				for _, status := range missing {
					names = append(names, status.Name)
				}
				return fmt.Errorf("missing required tools: %s", strings.Join(names, ", "))
			}
			return nil
		},
	}
}

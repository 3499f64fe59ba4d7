package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and scheduled verification",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			app.Logger.Info().Str("port", app.Config.ServerPort).Msg("Starting reelarr")

			if err := app.Scheduler.Start(signalCtx); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			defer app.Scheduler.Stop()

			if err := app.Server.Start(signalCtx); err != nil {
				return err
			}

			app.Logger.Info().Msg("reelarr stopped")
			return nil
		},
	}
}

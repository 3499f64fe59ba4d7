package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/amaumene/reelarr/internal/controllers"
	"github.com/spf13/cobra"
)

// commandContext builds the application graph once, on first use
type commandContext struct {
	once    sync.Once
	app     *App
	cleanup func()
	err     error
}

func (c *commandContext) ensureApp() (*App, error) {
	c.once.Do(func() {
		c.app, c.cleanup, c.err = initializeApp()
	})
	return c.app, c.err
}

func (c *commandContext) close() {
	if c.cleanup != nil {
		c.cleanup()
		c.cleanup = nil
	}
}

// newJob creates a bulk job that stops after the current record on SIGINT or SIGTERM.
// The returned func releases the signal handler.
func newJob(app *App, name string) (*controllers.Job, func()) {
	job := controllers.NewJob(name, app.Config.ProgressEvery, app.Logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			app.Logger.Warn().Str("signal", sig.String()).Str("job", name).Msg("Stop requested, finishing current record")
			job.Stop()
		case <-done:
		}
	}()

	return job, func() {
		signal.Stop(sigChan)
		close(done)
	}
}

// writeJSON encodes v as indented JSON to the command's stdout
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

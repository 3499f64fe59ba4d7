package main

import (
	"github.com/spf13/cobra"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "verify [id]",
		Short: "Verify award-linked movies against TMDB",
		Long: "Without an id, verifies every pending movie, or every movie with --force. " +
			"With an id, verifies that single movie.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				movie, verdict, err := app.Verify.Verify(cmd.Context(), id)
				if err != nil {
					return err
				}
				return writeJSON(cmd, map[string]any{"movie": movie, "verdict": verdict})
			}

			job, release := newJob(app, "verify")
			defer release()

			summary, err := app.Verify.VerifyPending(cmd.Context(), job, force)
			if err != nil {
				return err
			}
			return writeJSON(cmd, summary)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-verify movies in every review status")
	return cmd
}

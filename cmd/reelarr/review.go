package main

import (
	"github.com/spf13/cobra"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Record manual review decisions for award-linked movies",
	}
	reviewCmd.AddCommand(newReviewConfirmCommand(ctx))
	reviewCmd.AddCommand(newReviewCorrectCommand(ctx))
	return reviewCmd
}

func newReviewConfirmCommand(ctx *commandContext) *cobra.Command {
	var reviewer, notes string

	cmd := &cobra.Command{
		Use:   "confirm <id>",
		Short: "Confirm a movie's current external identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			movie, err := app.Review.Confirm(cmd.Context(), id, reviewer, notes)
			if err != nil {
				return err
			}
			return writeJSON(cmd, movie)
		},
	}

	cmd.Flags().StringVar(&reviewer, "reviewer", "", "Name recorded as the reviewer")
	cmd.Flags().StringVar(&notes, "notes", "", "Review notes")
	_ = cmd.MarkFlagRequired("reviewer")
	return cmd
}

func newReviewCorrectCommand(ctx *commandContext) *cobra.Command {
	var reviewer string

	cmd := &cobra.Command{
		Use:   "correct <id> <external_id>",
		Short: "Replace a movie's external identifier and re-verify it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			externalID, err := parseExternalID(args[1])
			if err != nil {
				return err
			}

			movie, verdict, err := app.Review.Correct(cmd.Context(), id, externalID, reviewer)
			if err != nil {
				return err
			}
			return writeJSON(cmd, map[string]any{"movie": movie, "verdict": verdict})
		},
	}

	cmd.Flags().StringVar(&reviewer, "reviewer", "", "Name recorded as the reviewer")
	_ = cmd.MarkFlagRequired("reviewer")
	return cmd
}

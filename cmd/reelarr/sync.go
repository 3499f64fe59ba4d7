package main

import (
	"github.com/spf13/cobra"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Match award nominees against a collection",
	}
	syncCmd.AddCommand(newSyncBestPictureCommand(ctx))
	return syncCmd
}

func newSyncBestPictureCommand(ctx *commandContext) *cobra.Command {
	var (
		year   int
		userID string
	)

	cmd := &cobra.Command{
		Use:   "best-picture",
		Short: "Report which Best Picture nominees of a ceremony are in a collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}

			report, err := app.AwardSync.SyncBestPicture(cmd.Context(), userID, year)
			if err != nil {
				return err
			}
			return writeJSON(cmd, report)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Ceremony year")
	cmd.Flags().StringVar(&userID, "user", "", "Collection owner")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

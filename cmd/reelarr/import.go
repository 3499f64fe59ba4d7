package main

import (
	"fmt"

	"github.com/amaumene/reelarr/internal/services/sources"
	"github.com/spf13/cobra"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import nominations or a collection spreadsheet",
	}
	importCmd.AddCommand(newImportNominationsCommand(ctx))
	importCmd.AddCommand(newImportCollectionCommand(ctx))
	return importCmd
}

func newImportNominationsCommand(ctx *commandContext) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "nominations <file>",
		Short: "Import an award archive into canonical nominations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}

			records, err := sources.ReadArchiveFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read archive: %w", err)
			}

			job, release := newJob(app, "import_nominations")
			defer release()

			summary, err := app.Import.ImportNominations(cmd.Context(), job, records, verify)
			if err != nil {
				return err
			}
			return writeJSON(cmd, summary)
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Verify newly created movies against TMDB")
	return cmd
}

func newImportCollectionCommand(ctx *commandContext) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "collection <file>",
		Short: "Import a collection spreadsheet export for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}

			rows, err := sources.ReadSpreadsheetFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read spreadsheet: %w", err)
			}

			job, release := newJob(app, "import_collection")
			defer release()

			summary, err := app.Collection.ImportSpreadsheet(cmd.Context(), job, userID, rows)
			if err != nil {
				return err
			}
			return writeJSON(cmd, summary)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Collection owner")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

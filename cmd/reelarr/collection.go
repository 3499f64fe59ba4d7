package main

import (
	"fmt"
	"strconv"

	"github.com/amaumene/reelarr/internal/models"
	"github.com/spf13/cobra"
)

func newCollectionCommand(ctx *commandContext) *cobra.Command {
	var userID string

	collectionCmd := &cobra.Command{
		Use:   "collection",
		Short: "Review and correct a user's collection matches",
	}
	collectionCmd.PersistentFlags().StringVar(&userID, "user", "", "Collection owner")
	_ = collectionCmd.MarkPersistentFlagRequired("user")

	collectionCmd.AddCommand(newCollectionQueueCommand(ctx, &userID))
	collectionCmd.AddCommand(&cobra.Command{
		Use:   "correct <id> <external_id>",
		Short: "Rematch a collection movie to another external identifier",
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

			movie, err := app.Collection.CorrectMatch(cmd.Context(), userID, id, externalID)
			if err != nil {
				return err
			}
			return writeJSON(cmd, movie)
		},
	})
	collectionCmd.AddCommand(newApprovalCommand(ctx, &userID, "approve", "Approve a pending collection movie",
		func(app *App, user string, id uint) (*models.CollectionMovie, error) { return app.Collection.Approve(user, id) }))
	collectionCmd.AddCommand(newApprovalCommand(ctx, &userID, "remove", "Remove a collection movie",
		func(app *App, user string, id uint) (*models.CollectionMovie, error) { return app.Collection.Remove(user, id) }))

	return collectionCmd
}

func newCollectionQueueCommand(ctx *commandContext, userID *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "List pending collection movies, lowest match confidence first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}

			movies, err := app.Collection.ReviewQueue(*userID, limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd, movies)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of movies to list")
	return cmd
}

func newApprovalCommand(ctx *commandContext, userID *string, use, short string, apply func(*App, string, uint) (*models.CollectionMovie, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
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

			movie, err := apply(app, *userID, id)
			if err != nil {
				return err
			}
			return writeJSON(cmd, movie)
		},
	}
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

func parseExternalID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid external id %q", arg)
	}
	return id, nil
}

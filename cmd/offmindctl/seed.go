package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func seedDestinationsCmd() *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "seed-destinations",
		Short: "Create the default destinations a user is missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("invalid --user %q: %w", userFlag, err)
			}

			return withEnv(cmd.Context(), func(e *env) error {
				ctx := cmd.Context()
				if _, err := e.container.Repos.Profiles.GetByID(ctx, userID); err != nil {
					return fmt.Errorf("lookup profile %s: %w", userID, err)
				}

				n, err := e.container.Services.Destinations.SeedDefaults(ctx, userID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %d default destinations for %s.\n", n, userID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "profile ID to seed")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

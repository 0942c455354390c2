package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func cleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired or revoked refresh tokens and used or expired magic links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd.Context(), func(e *env) error {
				res, err := e.container.Services.Auth.CleanupExpired(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d refresh tokens and %d magic links.\n",
					res.RefreshTokens, res.MagicLinks)
				return nil
			})
		},
	}
}

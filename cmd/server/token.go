package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/config"
)

func newTokenCommand() *cobra.Command {
	var (
		userID uint
		ttl    string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if userID == 0 {
				return fmt.Errorf("--user must be a positive id")
			}

			d, err := time.ParseDuration(ttl)
			if err != nil {
				return fmt.Errorf("invalid --ttl: %w", err)
			}

			token, err := auth.IssueToken(cfg.JWTSecret, userID, d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().UintVar(&userID, "user", 0, "user id to embed in the token")
	cmd.Flags().StringVar(&ttl, "ttl", "24h", "token lifetime")

	return cmd
}

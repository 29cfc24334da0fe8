package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"elearning-notifier/internal/security"
)

func newPushTokenCmd(opts *rootOptions) *cobra.Command {
	var (
		source string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "push-token",
		Short: "Print a bearer token accepted by the trigger endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Server.PushSecret == "" {
				return errors.New("server.push_secret (PUSH_SECRET) is not set")
			}

			token, err := security.NewPushTokenManager(cfg.Server.PushSecret).Generate(source, ttl)
			if err != nil {
				return fmt.Errorf("failed to sign push token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "firestore-trigger", "Name of the delivering system")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}

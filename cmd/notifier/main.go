package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"elearning-notifier/internal/config"
	"elearning-notifier/internal/logger"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "notifier",
		Short:         "Emails users when a notification record is created",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML configuration file (optional)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Path to a dotenv file loaded before configuration")

	root.AddCommand(
		newServeCmd(opts),
		newDispatchCmd(opts),
		newPushTokenCmd(opts),
	)
	return root
}

// loadConfig reads the dotenv file (if present), the configuration, and
// initializes the global logger.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", o.envFile, err)
		}
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

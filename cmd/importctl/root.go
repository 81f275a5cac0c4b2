package main

import (
	"github.com/spf13/cobra"

	"github.com/mohammadpnp/contact-import/internal/config"
	"github.com/mohammadpnp/contact-import/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "importctl",
		Short:        "Operate the contact import service",
		SilenceUsage: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newMigrateCmd())

	return root
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.LogLevel), nil
}

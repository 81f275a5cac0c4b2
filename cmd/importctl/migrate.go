package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohammadpnp/contact-import/internal/infrastructure/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			if err := db.Migrate(cmd.Context(), cfg.Database.URL); err != nil {
				return err
			}

			log.Info("migrations applied")
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/toeic-corpus/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Apply every pending migration to the database named by DATABASE_DSN or database.dsn.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.Migrate(cmd.Context(), cmd.ErrOrStderr())
	},
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbenjam1n/arcacademy/internal/progress"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the self-hosted backend schema",
	Long: `Create the Postgres schema used by the --db backend: player profiles,
statistics, and puzzle result history. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		pool, err := progress.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to database: %w\nSet ACADEMY_DATABASE_URL environment variable", err)
		}
		defer pool.Close()

		if err := progress.NewPostgresBackend(pool).Migrate(ctx); err != nil {
			return err
		}
		fmt.Println("Schema ready.")
		return nil
	},
}

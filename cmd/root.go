package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"shortboard/internal/blob"
	"shortboard/internal/database/migration"
	"shortboard/internal/logger"
	"shortboard/internal/store"

	"github.com/spf13/cobra"
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run migrations manually.",
	Long:  `Brings the kv_blobs schema up to date. Only needed with the postgres storage driver.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbURL := os.Getenv("DATABASE_URL")
		migrationDir, _ := cmd.Flags().GetString("dir")

		err := migration.Migrate(
			dbURL,
			fmt.Sprintf("file://%s", migrationDir),
			logger.NewLogger(),
		)
		if err != nil {
			log.Println(err.Error())
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the initial database document.",
	Long:  `Creates the document with the built-in admin account unless one already exists.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := blob.OpenFromEnv()
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}

		st := store.New(b, logger.NewLogger())
		if err := st.Seed(cmd.Context()); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}

		return nil
	},
}

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:   "shortboard",
		Short: "Shortage tracking dashboard service",
	}
	MigrateCmd.Flags().String("dir", "./migrations", "Directory containing the migration files")
	rootCmd.AddCommand(MigrateCmd)
	rootCmd.AddCommand(SeedCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

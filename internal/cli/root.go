// Package cli implements the umqura-manage maintenance commands.
package cli

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/MahmoudAkram21/um-qura-back/internal/config"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
)

// NewRootCmd creates the root command. The version is set by the calling
// binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "umqura-manage",
		Short:         "Maintenance commands for the agricultural calendar API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newHashPasswordCmd())

	return rootCmd
}

// openDatabase loads configuration and connects. The caller closes the pool.
func openDatabase(ctx context.Context) (*config.Config, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return cfg, conn, nil
}

package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/seed"
)

func newMigrateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, conn, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			if path == "" {
				path = cfg.MigrationsPath
			}
			if err := db.RunMigrations(ctx, conn, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Migrations directory (default: MIGRATIONS_PATH)")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var (
		year    int
		migrate bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load default seasons, stars and the admin account",
		Long: "Creates the four default seasons when missing, replaces every star " +
			"with the default twelve, and creates or resets the admin account " +
			"from ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_NAME.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, conn, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			if migrate {
				if err := db.RunMigrations(ctx, conn, cfg.MigrationsPath); err != nil {
					return err
				}
			}

			res, err := seed.Run(ctx, db.NewStore(conn), seed.Options{
				Year:          year,
				AdminEmail:    cfg.AdminEmail,
				AdminPassword: cfg.AdminPassword,
				AdminName:     cfg.AdminName,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seasons created: %d\n", res.SeasonsCreated)
			fmt.Fprintf(out, "stars replaced:  %d -> %d\n", res.StarsRemoved, res.StarsCreated)
			fmt.Fprintf(out, "admin:           %s\n", res.Admin.Email)
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Gregorian year for star dates (default: current year)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply migrations before seeding")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for a password",
		Long:  "Hashes the argument, or the first line of stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

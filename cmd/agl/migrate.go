package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rooman-dev/agl-new/internal/core/service"
	"github.com/rooman-dev/agl-new/internal/infrastructure/db/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations, ensure the admin account and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := postgres.Migrate(ctx, a.pool, a.log); err != nil {
				return err
			}

			auth := service.NewAuthService(
				postgres.NewAccountRepository(a.pool),
				service.NewTokenService(a.cfg.Auth.JWTSecret, a.cfg.Auth.TokenTTL),
				nil,
				a.log,
			)
			if err := auth.Bootstrap(ctx, a.cfg.Auth.AdminUsername, a.cfg.Auth.AdminPassword); err != nil {
				return err
			}

			v, err := postgres.MigrationVersion(ctx, a.pool)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", v)
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/persistence"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/seed"
	"github.com/spec-kit/complaint-service/internal/service"
)

// bootstrapped holds state shared by every command.
type bootstrapped struct {
	cfg    *config.Config
	logger *zap.Logger
	pg     *persistence.Postgres
}

func bootstrap(ctx context.Context) (*bootstrapped, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &bootstrapped{cfg: cfg, logger: logger, pg: pg}, nil
}

func (r *bootstrapped) Close() {
	r.pg.Close()
	_ = r.logger.Sync()
}

func newMigrateCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOrBackground(cmd.Context())
			rt, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			if dir == "" {
				dir = rt.cfg.Postgres.MigrationsDir
			}
			return persistence.RunMigrations(ctx, rt.pg.PoolHandle(), dir, rt.logger)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "migrations directory (defaults to POSTGRES_MIGRATIONS_DIR)")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample users and complaints",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOrBackground(cmd.Context())
			rt, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := persistence.RunMigrations(ctx, rt.pg.PoolHandle(), rt.cfg.Postgres.MigrationsDir, rt.logger); err != nil {
				return err
			}

			pool := rt.pg.PoolHandle()
			authService := service.NewAuthService(rt.cfg.Auth, service.AuthDependencies{
				UserRepo: repository.NewUserRepository(pool),
				Logger:   rt.logger,
			})
			result, err := seed.Run(ctx, authService, repository.NewComplaintRepository(pool), rt.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users and %d complaints\n", result.Users, result.Complaints)
			return nil
		},
	}
}

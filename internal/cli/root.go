package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/transitdesk/lostfound-backend/internal/app"
	"github.com/transitdesk/lostfound-backend/internal/config"
)

// Opener открывает приложение для одной команды.
type Opener func(ctx context.Context) (*app.App, error)

// OpenFromEnv читает конфигурацию окружения и подключается к базе.
func OpenFromEnv(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}

// NewRootCmd собирает lfctl.
func NewRootCmd(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "lfctl",
		Short:         "Lost & found desk administration",
		Long:          "lfctl applies migrations, reviews claims and re-runs matching for existing reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(migrateCmd(open))
	root.AddCommand(claimsCmd(open))
	root.AddCommand(rescanCmd(open))
	return root
}

func withApp(cmd *cobra.Command, open Opener, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer a.Close()
	return fn(ctx, a)
}

func migrateCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Миграции применяются при открытии приложения.
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%s migrations applied (%s)\n", okMark(), a.Config.DBDriver)
				return nil
			})
		},
	}
}

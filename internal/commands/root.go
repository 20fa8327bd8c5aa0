// Package commands implements messflowctl, the operator CLI.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/platform/app"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/platform/config"
	"github.com/algoplusmessflow-tech/Messflow-sub001/pkg/database"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Runtime supplies the services a command works against and a func that releases them.
type Runtime func(ctx context.Context) (*portssvc.ServiceContainer, func(), error)

// Migrator applies schema migrations in one direction.
type Migrator func(dir database.Direction) error

// NewRootCommand creates the root CLI command backed by the configured database.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	loadConfig := func() (*config.Config, error) {
		_ = godotenv.Load()
		return config.Load(v)
	}
	runtime := func(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, nil, err
		}
		a, err := app.New(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return a.Services, a.Close, nil
	}
	migrator := func(dir database.Direction) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, dir, logger)
	}

	rootCmd := newRootCommand(runtime, migrator)
	rootCmd.PersistentFlags().String("config", "", "config file (overrides CONFIG_FILE)")
	_ = v.BindPFlag("CONFIG_FILE", rootCmd.PersistentFlags().Lookup("config"))
	return rootCmd
}

func newRootCommand(runtime Runtime, migrator Migrator) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "messflowctl",
		Short: "Operator tooling for the Messflow backend",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newMigrateCommand(migrator),
		newPettyCashCommand(runtime),
		newReportCommand(runtime),
		newInsightsCommand(runtime),
		newPlanCommand(runtime),
	)

	return rootCmd
}

// withServices runs fn against a fresh runtime and releases it afterwards.
func withServices(cmd *cobra.Command, runtime Runtime, fn func(ctx context.Context, svc *portssvc.ServiceContainer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, release, err := runtime(ctx)
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}
	defer release()
	return fn(ctx, svc)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

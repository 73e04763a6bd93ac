// Package cli implements bizctl, the operator command line for the
// registration database.
package cli

import (
	"context"
	"log/slog"

	"github.com/JonMunkholm/bizreg/internal/config"
	"github.com/JonMunkholm/bizreg/internal/core"
	"github.com/JonMunkholm/bizreg/internal/database"
	"github.com/JonMunkholm/bizreg/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Backend is the storage the commands operate on. *core.Repository satisfies it.
type Backend interface {
	core.Store
	EnsureSchema(ctx context.Context) error
}

// Opener connects to a Backend. The returned func releases it.
type Opener func(ctx context.Context) (Backend, func(), error)

func newRootCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bizctl",
		Short:         "Manage the business registration database",
		Long:          "bizctl creates the registration schema, lists stored businesses and submits registrations from JSON files.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newMigrateCmd(open))
	cmd.AddCommand(newListCmd(open))
	cmd.AddCommand(newSubmitCmd(open))
	return cmd
}

// NewRootCmdForTest returns the root command wired to open.
func NewRootCmdForTest(open Opener) *cobra.Command {
	return newRootCmd(open)
}

// Execute runs bizctl against the database named by the environment.
func Execute() error {
	return newRootCmd(openPostgres).Execute()
}

// openPostgres loads configuration the same way the server does and opens
// a Repository on it.
func openPostgres(ctx context.Context) (Backend, func(), error) {
	_ = godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	pool, err := database.OpenPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("connected to database", "name", database.Name(cfg.Database.URL))

	return core.NewRepository(pool), pool.Close, nil
}

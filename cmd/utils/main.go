package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/appetiteclub/dinein/cmd/utils/internal/commands"
	"github.com/appetiteclub/dinein/internal/config"
	"github.com/appetiteclub/dinein/internal/logger"
)

const (
	appName      = "dinein-utils"
	appVersion   = "0.1.0"
	appNamespace = "UTILS"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type env struct {
	config *config.Config
	logger logger.Logger
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		e          env
	)

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Dine-in operator commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  dinein-utils seed-demo
  dinein-utils generate-tables --restaurant <uuid> --count 12
  UTILS_DB_MONGO_URL=mongodb://localhost:27017 dinein-utils reset-db`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]any{}
			if cmd.Flags().Changed("log-level") {
				overrides["log.level"] = logLevel
			}
			cfg, err := config.Load(appNamespace, config.Options{File: configPath, Overrides: overrides})
			if err != nil {
				return fmt.Errorf("cannot load config: %w", err)
			}
			e.config = cfg
			e.logger = logger.New(os.Stderr,
				cfg.GetStringOrDef("log.level", "info"),
				cfg.GetStringOrDef("log.format", "text"),
			)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		storeCmd("seed-demo", "Create the demo restaurant with staff, menu, tables and orders", &e, commands.SeedDemo),
		storeCmd("clear-demo", "Remove the demo restaurant and its data", &e, commands.ClearDemo),
		storeCmd("reset-db", "Drop every collection (USE WITH CAUTION)", &e, commands.ResetDB),
		generateTablesCmd(&e),
		tokenCmd(&e),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s\n", appName, appVersion)
			},
		},
	)

	return cmd
}

func storeCmd(use, short string, e *env, run func(context.Context, *config.Config, logger.Logger) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			return run(ctx, e.config, e.logger)
		},
	}
}

func generateTablesCmd(e *env) *cobra.Command {
	var (
		restaurantID string
		count        int
		capacity     int
	)

	cmd := &cobra.Command{
		Use:   "generate-tables",
		Short: "Create Table 1..N for a restaurant without tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			return commands.GenerateTables(ctx, e.config, e.logger, restaurantID, count, capacity)
		},
	}

	cmd.Flags().StringVar(&restaurantID, "restaurant", "", "Restaurant id")
	cmd.Flags().IntVar(&count, "count", 10, "Number of tables")
	cmd.Flags().IntVar(&capacity, "capacity", 4, "Seats per table")
	_ = cmd.MarkFlagRequired("restaurant")

	return cmd
}

func tokenCmd(e *env) *cobra.Command {
	var (
		subject string
		roles   []string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := commands.Token(e.config, subject, roles, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "Token subject (user id)")
	cmd.Flags().StringSliceVar(&roles, "roles", nil, "Comma separated roles")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime, 0 for no expiry")
	_ = cmd.MarkFlagRequired("sub")

	return cmd
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

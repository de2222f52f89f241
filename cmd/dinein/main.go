package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/appetiteclub/dinein/internal/app"
	"github.com/appetiteclub/dinein/internal/config"
	"github.com/appetiteclub/dinein/internal/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           app.Name,
		Short:         "Dine-in ordering backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(serveCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", app.Name, app.Version)
		},
	})

	return cmd
}

func serveCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		port       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]any{}
			if cmd.Flags().Changed("log-level") {
				overrides["log.level"] = logLevel
			}
			if cmd.Flags().Changed("port") {
				overrides["web.port"] = port
			}
			return serve(configPath, overrides)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVarP(&port, "port", "p", "8080", "HTTP port")

	return cmd
}

func serve(configPath string, overrides map[string]any) error {
	cfg, err := config.Load(app.Namespace, config.Options{File: configPath, Overrides: overrides})
	if err != nil {
		return fmt.Errorf("%s(%s) cannot setup: %w", app.Name, app.Version, err)
	}

	log := logger.New(os.Stderr,
		cfg.GetStringOrDef("log.level", "info"),
		cfg.GetStringOrDef("log.format", "text"),
	)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("%s(%s) cannot start: %w", app.Name, app.Version, err)
	}

	return a.Run(ctx)
}

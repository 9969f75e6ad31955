package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/atemporal/shop-api/pkg/config"
	"github.com/atemporal/shop-api/pkg/observability/logger"
	"github.com/atemporal/shop-api/pkg/version"
)

const envPrefix = "SHOPAPI"

// NewCommand builds the root CLI for a service binary with serve and
// version subcommands. Running the root command serves.
func NewCommand(opts Options) *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:           opts.Name,
		Short:         opts.Description,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, cfgPath, opts)
		},
	}
	addGlobalFlags(rootCmd.PersistentFlags(), &cfgPath)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, cfgPath, opts)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Current(opts.Name).String())
		},
	}

	rootCmd.AddCommand(serveCmd, versionCmd)
	return rootCmd
}

func addGlobalFlags(flags *pflag.FlagSet, cfgPath *string) {
	flags.StringVarP(cfgPath, "config-file", "c", "", "config file path")
}

func serve(cmd *cobra.Command, cfgPath string, opts Options) error {
	cfg, err := config.NewViperLoader(cfgPath, envPrefix).
		WithServiceNameDefault(opts.Name).
		Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	level, err := logger.ParseLogLevel(cfg.Observability.LogLevel)
	if err != nil {
		return err
	}
	format, err := logger.ParseLogFormat(cfg.Observability.LogFormat)
	if err != nil {
		return err
	}

	zapLog, err := logger.NewZapLogger(logger.Config{Level: level, Format: format})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = zapLog.Sync() }()

	log := zapLog.With("service", cfg.Service.Name)
	return Run(cmd.Context(), cfg, log, opts)
}

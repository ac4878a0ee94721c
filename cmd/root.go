// -- cmd/root.go --
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/qaforge/domact/internal/config"
	"github.com/qaforge/domact/internal/observability"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "domact",
	Short:   "domact executes resilient DOM actions against a live browser.",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// This function runs before any command, setting up config and logging.
		if err := initializeConfig(); err != nil {
			return err
		}

		c, err := config.NewConfigFromViper(viper.GetViper())
		if err != nil {
			// Initialize a fallback logger if config loading fails
			observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "domact"})
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c

		observability.InitializeLogger(cfg.Logger)
		observability.GetLogger().Info("Starting domact", zap.String("version", Version))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Use the logger if available, otherwise fallback to stderr
		if logger := observability.GetLogger(); logger != nil && logger != zap.NewNop() {
			logger.Error("Command execution failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newClickCmd())
}

// initializeConfig reads in config file and ENV variables if set.
func initializeConfig() error {
	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	config.SetDefaults(v)
	config.BindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}
	return nil
}

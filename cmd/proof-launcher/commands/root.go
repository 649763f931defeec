package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "proof-launcher",
	Short: "Launch EC2 proof runs from S3 ledger uploads",
	Long: `Receives S3 object-created notifications and launches one EC2 instance per
uploaded ledger. With no subcommand it runs as an AWS Lambda function.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("workload-mode", "native", "Boot script variant (native, container)")

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("workload-mode", rootCmd.PersistentFlags().Lookup("workload-mode"))

	// The logger is set up before config.Load runs, so its env binding
	// has to exist already.
	viper.BindEnv("log-level", "LOG_LEVEL")
}

// setupLogging initializes the structured logger. Logs go to stderr so
// commands that print to stdout stay pipeable.
func setupLogging(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(viper.GetString("log-level")))); err != nil {
		return fmt.Errorf("invalid log level %q", viper.GetString("log-level"))
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}

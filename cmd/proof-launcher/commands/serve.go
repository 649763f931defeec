package commands

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an AWS Lambda function handling S3 notifications",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Configuration errors end the process before the first event.
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l, err := newLauncher(ctx, cfg)
	if err != nil {
		return err
	}

	slog.Info("lambda_start", "workload_mode", cfg.WorkloadMode, "bucket", cfg.S3Bucket, "target_region", cfg.TargetRegion)

	lambda.Start(l.Handle)
	return nil
}

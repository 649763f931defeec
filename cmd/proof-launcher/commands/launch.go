package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/proofworks/proof-launcher/internal/config"
	"github.com/spf13/cobra"
)

var launchDryRun bool

var launchCmd = &cobra.Command{
	Use:   "launch <s3-key>...",
	Short: "Launch proof instances for ledger keys without an S3 notification",
	Long: `Builds the same notification batch S3 would send for the given keys and runs
it through the Lambda handler. Keys are processed in order and the first
failure stops the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
	launchCmd.Flags().BoolVar(&launchDryRun, "dry-run", false, "Check permissions and parameters without launching")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l, err := newLauncher(ctx, cfg)
	if err != nil {
		return err
	}
	l.DryRun = launchDryRun

	result, err := l.Handle(ctx, notification(cfg, args))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// notification builds an S3 event batch for keys in cfg's bucket.
func notification(cfg *config.Config, keys []string) events.S3Event {
	event := events.S3Event{Records: make([]events.S3EventRecord, 0, len(keys))}
	for _, key := range keys {
		record := events.S3EventRecord{
			EventSource: "aws:s3",
			EventName:   "ObjectCreated:Put",
			AWSRegion:   cfg.TargetRegion,
		}
		record.S3.Bucket.Name = cfg.S3Bucket
		record.S3.Object.Key = key
		event.Records = append(event.Records, record)
	}
	return event
}

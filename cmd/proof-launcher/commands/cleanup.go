package commands

import (
	"context"
	"fmt"

	"github.com/proofworks/proof-launcher/pkg/compute"
	"github.com/proofworks/proof-launcher/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	cleanupAll      bool
	cleanupProofDir string
	cleanupDryRun   bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Terminate proof instances that are still running",
	Long: `Terminate instances created by the launcher. A batch that fails part way
leaves the instances it already launched running; use this to stop them.
  --all                 Terminate every proof instance
  --proof-dir <dir>     Terminate instances for one proof directory
  --dry-run             Only print what would be terminated`,
	Args: cobra.NoArgs,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().BoolVar(&cleanupAll, "all", false, "Terminate all proof instances")
	cleanupCmd.Flags().StringVar(&cleanupProofDir, "proof-dir", "", "Terminate instances for this proof directory")
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "List without terminating")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	if !cleanupAll && !cmd.Flags().Changed("proof-dir") {
		return fmt.Errorf("must specify --all or --proof-dir")
	}

	ctx := context.Background()

	_, awsCfg, err := loadAWS(ctx)
	if err != nil {
		return err
	}

	return cleanupInstances(ctx, cmd, compute.NewClient(awsCfg), cleanupProofDir, cleanupAll, cleanupDryRun)
}

func cleanupInstances(ctx context.Context, cmd *cobra.Command, client *compute.Client, proofDir string, all, dryRun bool) error {
	out := cmd.OutOrStdout()

	instances, err := client.ListLaunched(ctx, proofDir, all)
	if err != nil {
		return errors.Wrap(err, "list failed")
	}

	if len(instances) == 0 {
		fmt.Fprintln(out, "No proof instances to clean up")
		return nil
	}

	ids := make([]string, 0, len(instances))
	for _, inst := range instances {
		ids = append(ids, inst.ID)
		fmt.Fprintf(out, "%s (%s) %s\n", inst.ID, inst.State, inst.SourceKey)
	}

	if dryRun {
		fmt.Fprintf(out, "Would terminate %d instance(s)\n", len(ids))
		return nil
	}

	if err := client.Terminate(ctx, ids); err != nil {
		return errors.Wrap(err, "cleanup failed")
	}

	fmt.Fprintf(out, "Terminated %d instance(s)\n", len(ids))
	return nil
}

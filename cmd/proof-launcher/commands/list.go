package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/proofworks/proof-launcher/pkg/compute"
	"github.com/proofworks/proof-launcher/pkg/errors"
	"github.com/spf13/cobra"
)

var listProofDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List proof instances that have not terminated yet",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listProofDir, "proof-dir", "", "Only list instances for this proof directory")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	_, awsCfg, err := loadAWS(ctx)
	if err != nil {
		return err
	}

	all := !cmd.Flags().Changed("proof-dir")
	instances, err := compute.NewClient(awsCfg).ListLaunched(ctx, listProofDir, all)
	if err != nil {
		return errors.Wrap(err, "list failed")
	}

	out := cmd.OutOrStdout()
	if len(instances) == 0 {
		fmt.Fprintln(out, "No proof instances running")
		return nil
	}

	fmt.Fprintf(out, "%-20s %-10s %-40s %-20s\n", "INSTANCE", "STATE", "PROOF DIR", "LAUNCHED")
	fmt.Fprintln(out, "------------------------------------------------------------------------------------------")

	for _, inst := range instances {
		proofDir := inst.ProofDir
		if proofDir == "" {
			proofDir = "-"
		}
		launched := "-"
		if !inst.LaunchTime.IsZero() {
			launched = inst.LaunchTime.UTC().Format(time.DateTime)
		}

		fmt.Fprintf(out, "%-20s %-10s %-40s %-20s\n", inst.ID, inst.State, proofDir, launched)
	}

	return nil
}

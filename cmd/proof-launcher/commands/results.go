package commands

import (
	"context"
	"fmt"

	"github.com/proofworks/proof-launcher/pkg/errors"
	"github.com/proofworks/proof-launcher/pkg/security"
	"github.com/proofworks/proof-launcher/pkg/storage"
	"github.com/spf13/cobra"
)

var resultsDownload string

var resultsCmd = &cobra.Command{
	Use:   "results <proof-dir>",
	Short: "Show what a proof run has uploaded to S3",
	Args:  cobra.ExactArgs(1),
	RunE:  runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.Flags().StringVar(&resultsDownload, "download", "", "Download proofs.zip to this path")
}

func runResults(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	proofDir := args[0]

	if err := security.NewValidator(security.MaxUserDataSize).ValidateProofDir(proofDir); err != nil {
		return err
	}

	cfg, awsCfg, err := loadAWS(ctx)
	if err != nil {
		return err
	}

	s3Client := storage.NewClient(awsCfg, cfg.S3Bucket, cfg.TargetRegion)

	keys, err := s3Client.ListObjects(ctx, proofDir+"/")
	if err != nil {
		return errors.Wrap(err, "list failed")
	}

	out := cmd.OutOrStdout()
	if len(keys) == 0 {
		fmt.Fprintf(out, "No objects under s3://%s/%s/\n", cfg.S3Bucket, proofDir)
		return nil
	}

	for _, key := range keys {
		fmt.Fprintln(out, key)
	}

	ledger, err := s3Client.Exists(ctx, storage.Key(proofDir, storage.LedgerObject))
	if err != nil {
		return errors.Wrap(err, "ledger check failed")
	}
	if !ledger {
		fmt.Fprintf(out, "\n%s missing; a launch for this directory has no input\n", storage.LedgerObject)
	}

	archiveKey := storage.Key(proofDir, storage.ArchiveObject)
	ok, err := s3Client.Exists(ctx, archiveKey)
	if err != nil {
		return errors.Wrap(err, "archive check failed")
	}
	if !ok {
		fmt.Fprintln(out, "\nproofs.zip not published yet")
		return nil
	}

	fmt.Fprintf(out, "\nPublic download URL: %s\n", s3Client.PublicURL(proofDir))

	if resultsDownload != "" {
		result, err := s3Client.Download(ctx, archiveKey, resultsDownload)
		if err != nil {
			return errors.Wrap(err, "download failed")
		}
		fmt.Fprintf(out, "Downloaded %d bytes to %s (sha256 %s)\n", result.Size, result.LocalPath, result.SHA256)
	}

	return nil
}

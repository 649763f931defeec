// Package launcher turns S3 object-created notifications into EC2 proof
// instances, one instance per record.
package launcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/proofworks/proof-launcher/internal/config"
	"github.com/proofworks/proof-launcher/pkg/bootscript"
	"github.com/proofworks/proof-launcher/pkg/compute"
	"github.com/proofworks/proof-launcher/pkg/security"
)

// InstanceRunner issues the provisioning call.
type InstanceRunner interface {
	RunInstances(ctx context.Context, params *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error)
}

// Launcher holds the read-only dependencies shared by every invocation
type Launcher struct {
	cfg       *config.Config
	script    *bootscript.Script
	runner    InstanceRunner
	validator *security.Validator

	// DryRun asks EC2 to check permissions without launching anything.
	DryRun bool
}

// New creates a launcher. cfg must already be validated.
func New(cfg *config.Config, script *bootscript.Script, runner InstanceRunner, validator *security.Validator) *Launcher {
	return &Launcher{
		cfg:       cfg,
		script:    script,
		runner:    runner,
		validator: validator,
	}
}

// Handle launches one instance per record, in order. The first failure
// aborts the rest of the batch and no results are returned; instances
// launched before it keep running.
func (l *Launcher) Handle(ctx context.Context, event events.S3Event) (Result, error) {
	slog.Info("launch_batch_start", "record_count", len(event.Records), "dry_run", l.DryRun)

	var launched []string
	for i, record := range event.Records {
		key := ObjectKey(record)

		id, err := l.launch(ctx, key)
		if err != nil {
			slog.Error("launch_instance_failed", "key", key, "record", i+1, "error", err)
			return Result{}, &LaunchError{Index: i + 1, Key: key, Err: err}
		}

		if id != "" {
			launched = append(launched, id)
		}
	}

	if l.DryRun {
		slog.Info("launch_batch_dry_run_complete", "record_count", len(event.Records))
		return newDryRunResult(len(event.Records)), nil
	}

	slog.Info("launch_batch_complete", "instance_count", len(launched), "instance_ids", launched)
	return newResult(launched), nil
}

func (l *Launcher) launch(ctx context.Context, key string) (string, error) {
	if err := l.validator.ValidateKey(key); err != nil {
		return "", err
	}

	proofDir := bootscript.ProofDir(key)
	userData := l.script.Render(proofDir)

	if err := l.validator.ValidateUserDataSize(len(userData)); err != nil {
		return "", err
	}

	slog.Info("launch_instance_start", "key", key, "proof_dir", proofDir, "instance_type", l.cfg.InstanceType)

	out, err := l.runner.RunInstances(ctx, BuildRequest(l.cfg, userData, proofDir, key, l.DryRun))
	if l.DryRun && compute.IsDryRunSuccess(err) {
		slog.Info("launch_instance_dry_run_ok", "key", key, "proof_dir", proofDir)
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if out == nil || len(out.Instances) == 0 {
		return "", fmt.Errorf("run instances returned no instances")
	}

	id := aws.ToString(out.Instances[0].InstanceId)
	slog.Info("launch_instance_complete", "instance_id", id, "key", key, "proof_dir", proofDir)
	return id, nil
}

// ObjectKey returns the key of the object that triggered record, preferring
// the URL-decoded form S3 notifications carry alongside the raw key.
func ObjectKey(record events.S3EventRecord) string {
	if record.S3.Object.URLDecodedKey != "" {
		return record.S3.Object.URLDecodedKey
	}
	return record.S3.Object.Key
}

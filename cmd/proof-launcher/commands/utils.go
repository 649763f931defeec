package commands

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/proofworks/proof-launcher/internal/config"
	"github.com/proofworks/proof-launcher/pkg/bootscript"
	"github.com/proofworks/proof-launcher/pkg/compute"
	"github.com/proofworks/proof-launcher/pkg/errors"
	"github.com/proofworks/proof-launcher/pkg/launcher"
	"github.com/proofworks/proof-launcher/pkg/security"
)

// loadConfig loads and validates configuration. It is called once per
// process, before any event is handled.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "config load failed")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config invalid")
	}
	return cfg, nil
}

// newScript bakes the configured workload template.
func newScript(cfg *config.Config) (*bootscript.Script, error) {
	name := bootscript.Native
	if cfg.Mode() == config.ModeContainer {
		name = bootscript.Container
	}

	script, err := bootscript.New(name, bootscript.Params{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.TargetRegion,
		AccountID: cfg.AWSAccountID,
		ImageURI:  cfg.ImageURI(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "boot script init failed")
	}
	return script, nil
}

// newLauncher wires the launcher from configuration.
func newLauncher(ctx context.Context, cfg *config.Config) (*launcher.Launcher, error) {
	script, err := newScript(cfg)
	if err != nil {
		return nil, err
	}

	awsCfg, err := compute.LoadAWSConfig(ctx, cfg.TargetRegion)
	if err != nil {
		return nil, errors.Wrap(err, "AWS config failed")
	}

	ec2Client := compute.NewClient(awsCfg)
	validator := security.NewValidator(security.MaxUserDataSize)

	slog.Info("launcher_ready", "template", script.Name(), "workload_mode", cfg.Mode(), "image_uri", cfg.ImageURI())

	return launcher.New(cfg, script, ec2Client.API(), validator), nil
}

// loadAWS loads configuration plus the shared AWS config for operator commands.
func loadAWS(ctx context.Context) (*config.Config, aws.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, aws.Config{}, err
	}
	awsCfg, err := compute.LoadAWSConfig(ctx, cfg.TargetRegion)
	if err != nil {
		return nil, aws.Config{}, errors.Wrap(err, "AWS config failed")
	}
	return cfg, awsCfg, nil
}

package config

import (
	"fmt"
	"strings"

	"github.com/proofworks/proof-launcher/pkg/errors"
	"github.com/spf13/viper"
)

// Workload modes
const (
	ModeNative    = "native"
	ModeContainer = "container"
)

// Config holds all launcher configuration. It is read once at process start
// and never mutated afterwards.
type Config struct {
	// Instance shape
	AMIID              string `mapstructure:"ami-id"`
	InstanceType       string `mapstructure:"instance-type"`
	IAMInstanceProfile string `mapstructure:"iam-instance-profile"`
	EC2KeyName         string `mapstructure:"ec2-key-name"`

	// Storage and account
	S3Bucket     string `mapstructure:"s3-bucket"`
	AWSAccountID string `mapstructure:"aws-account-id"`
	TargetRegion string `mapstructure:"target-region"`

	// Workload
	WorkloadMode  string `mapstructure:"workload-mode"`
	ECRRepository string `mapstructure:"ecr-repository"`
	ECRImageTag   string `mapstructure:"ecr-image-tag"`

	LogLevel string `mapstructure:"log-level"`
}

// envBindings maps config keys to the environment variables a Lambda
// deployment sets. Order matters: it is the order missing variables are
// reported in.
var envBindings = []struct {
	key      string
	env      string
	required bool
}{
	{"ami-id", "AMI_ID", true},
	{"instance-type", "INSTANCE_TYPE", true},
	{"iam-instance-profile", "IAM_INSTANCE_PROFILE", true},
	{"s3-bucket", "S3_BUCKET", true},
	{"aws-account-id", "AWS_ACCOUNT_ID", true},
	{"target-region", "TARGET_REGION", true},
	{"ec2-key-name", "EC2_KEY_NAME", false},
	{"workload-mode", "WORKLOAD_MODE", false},
	{"ecr-repository", "ECR_REPOSITORY", false},
	{"ecr-image-tag", "ECR_IMAGE_TAG", false},
	{"log-level", "LOG_LEVEL", false},
}

// MissingError names every required variable that was absent or empty.
type MissingError struct {
	Vars []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Vars, ", "))
}

// Is makes a MissingError match errors.ErrConfig.
func (e *MissingError) Is(target error) bool {
	return target == errors.ErrConfig
}

// Load reads configuration from environment, config file, and defaults
// using the global viper instance, which cobra flags are bound to.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads configuration through v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	// Set defaults
	for _, b := range envBindings {
		v.SetDefault(b.key, "")
	}
	v.SetDefault("workload-mode", ModeNative)
	v.SetDefault("ecr-image-tag", "latest")
	v.SetDefault("log-level", "info")

	// Environment variables use the bare names the deployment sets
	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, errors.Wrap(err, "failed to bind "+b.env)
		}
	}

	// Config file (optional)
	v.SetConfigName("proof-launcher")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.proof-launcher")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.WorkloadMode = cfg.Mode()

	return &cfg, nil
}

// Validate checks configuration for errors. All missing required values are
// reported together in a single *MissingError.
func (c *Config) Validate() error {
	values := map[string]string{
		"AMI_ID":               c.AMIID,
		"INSTANCE_TYPE":        c.InstanceType,
		"IAM_INSTANCE_PROFILE": c.IAMInstanceProfile,
		"S3_BUCKET":            c.S3Bucket,
		"AWS_ACCOUNT_ID":       c.AWSAccountID,
		"TARGET_REGION":        c.TargetRegion,
	}

	var missing []string
	for _, b := range envBindings {
		if b.required && values[b.env] == "" {
			missing = append(missing, b.env)
		}
	}

	var modeErr error
	switch c.Mode() {
	case ModeNative:
	case ModeContainer:
		if c.ECRRepository == "" {
			missing = append(missing, "ECR_REPOSITORY")
		}
	default:
		modeErr = fmt.Errorf("%w: workload-mode must be %q or %q, got %q",
			errors.ErrConfig, ModeNative, ModeContainer, c.WorkloadMode)
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, &MissingError{Vars: missing})
	}
	if modeErr != nil {
		errs = append(errs, modeErr)
	}
	return errors.Join(errs...)
}

// Mode returns the workload mode, case-folded.
func (c *Config) Mode() string {
	return strings.ToLower(strings.TrimSpace(c.WorkloadMode))
}

// ImageURI returns the fully qualified container image reference for the
// container workload. It is empty in native mode.
func (c *Config) ImageURI() string {
	if c.Mode() != ModeContainer {
		return ""
	}
	tag := c.ECRImageTag
	if tag == "" {
		tag = "latest"
	}
	return fmt.Sprintf("%s.dkr.ecr.%s.amazonaws.com/%s:%s", c.AWSAccountID, c.TargetRegion, c.ECRRepository, tag)
}

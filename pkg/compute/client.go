// Package compute wraps the EC2 API calls the launcher and its operator
// commands make.
package compute

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/proofworks/proof-launcher/pkg/errors"
)

// Tag keys written on every launched instance
const (
	TagName       = "Name"
	TagLaunchedBy = "LaunchedBy"
	TagProofDir   = "ProofDir"
	TagSourceKey  = "SourceKey"

	// LaunchedByValue marks instances this launcher created
	LaunchedByValue = "proof-launcher"
)

// API is the subset of the EC2 client used here.
type API interface {
	RunInstances(ctx context.Context, params *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error)
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	TerminateInstances(ctx context.Context, params *ec2.TerminateInstancesInput, optFns ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error)
}

// Client provides EC2 operations
type Client struct {
	api API
}

// LoadAWSConfig loads the default credential chain. The region comes from
// the environment (the Lambda's own region); fallbackRegion is used only
// when none is set.
func LoadAWSConfig(ctx context.Context, fallbackRegion string) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("aws_config_load_failed", "error", err)
		return aws.Config{}, errors.Wrap(err, "failed to load AWS config")
	}
	if cfg.Region == "" {
		cfg.Region = fallbackRegion
	}
	return cfg, nil
}

// NewClient creates an EC2 client from cfg
func NewClient(cfg aws.Config) *Client {
	slog.Info("ec2_client_init", "region", cfg.Region)
	return &Client{api: ec2.NewFromConfig(cfg)}
}

// NewClientWithAPI wraps an existing EC2 API implementation
func NewClientWithAPI(api API) *Client {
	return &Client{api: api}
}

// API returns the underlying EC2 API
func (c *Client) API() API {
	return c.api
}

// Tags returns the tag set for an instance launched for key.
func Tags(proofDir, key string) []types.Tag {
	name := "proof-" + proofDir
	if proofDir == "" {
		name = "proof-root"
	}
	return []types.Tag{
		{Key: aws.String(TagName), Value: aws.String(name)},
		{Key: aws.String(TagLaunchedBy), Value: aws.String(LaunchedByValue)},
		{Key: aws.String(TagProofDir), Value: aws.String(proofDir)},
		{Key: aws.String(TagSourceKey), Value: aws.String(key)},
	}
}

// IsDryRunSuccess reports whether err is EC2's answer to a dry-run request
// that would have succeeded.
func IsDryRunSuccess(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "DryRunOperation"
}

package compute

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/proofworks/proof-launcher/pkg/errors"
)

// Instance is a launched proof instance that has not terminated yet
type Instance struct {
	ID         string
	State      string
	ProofDir   string
	SourceKey  string
	LaunchTime time.Time
}

// ListLaunched returns live instances created by the launcher. An empty
// proofDir with all set matches every proof directory.
func (c *Client) ListLaunched(ctx context.Context, proofDir string, all bool) ([]Instance, error) {
	slog.Info("ec2_list_launched_start", "proof_dir", proofDir, "all", all)

	filters := []types.Filter{
		{Name: aws.String("tag:" + TagLaunchedBy), Values: []string{LaunchedByValue}},
		{Name: aws.String("instance-state-name"), Values: []string{"pending", "running", "stopping", "stopped"}},
	}
	if !all {
		filters = append(filters, types.Filter{Name: aws.String("tag:" + TagProofDir), Values: []string{proofDir}})
	}

	var instances []Instance
	paginator := ec2.NewDescribeInstancesPaginator(c.api, &ec2.DescribeInstancesInput{Filters: filters})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			slog.Error("ec2_describe_failed", "proof_dir", proofDir, "error", err)
			return nil, errors.Wrap(err, "failed to describe instances")
		}

		for _, res := range page.Reservations {
			for _, inst := range res.Instances {
				instances = append(instances, toInstance(inst))
			}
		}
	}

	slog.Info("ec2_list_launched_complete", "proof_dir", proofDir, "instance_count", len(instances))
	return instances, nil
}

// Terminate terminates the given instances in one call
func (c *Client) Terminate(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	slog.Info("ec2_terminate_start", "instance_ids", ids)

	_, err := c.api.TerminateInstances(ctx, &ec2.TerminateInstancesInput{InstanceIds: ids})
	if err != nil {
		slog.Error("ec2_terminate_failed", "instance_ids", ids, "error", err)
		return errors.Wrap(err, "failed to terminate instances")
	}

	slog.Info("ec2_terminate_complete", "instance_count", len(ids))
	return nil
}

func toInstance(inst types.Instance) Instance {
	out := Instance{
		ID: aws.ToString(inst.InstanceId),
	}
	if inst.State != nil {
		out.State = string(inst.State.Name)
	}
	if inst.LaunchTime != nil {
		out.LaunchTime = *inst.LaunchTime
	}
	for _, tag := range inst.Tags {
		switch aws.ToString(tag.Key) {
		case TagProofDir:
			out.ProofDir = aws.ToString(tag.Value)
		case TagSourceKey:
			out.SourceKey = aws.ToString(tag.Value)
		}
	}
	return out
}

package launcher

import (
	"encoding/base64"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/proofworks/proof-launcher/internal/config"
	"github.com/proofworks/proof-launcher/pkg/compute"
)

// BuildRequest returns the RunInstances input for one proof directory.
// Exactly one instance is requested; KeyName is set only when configured.
func BuildRequest(cfg *config.Config, userData, proofDir, key string, dryRun bool) *ec2.RunInstancesInput {
	input := &ec2.RunInstancesInput{
		ImageId:      aws.String(cfg.AMIID),
		InstanceType: types.InstanceType(cfg.InstanceType),
		IamInstanceProfile: &types.IamInstanceProfileSpecification{
			Name: aws.String(cfg.IAMInstanceProfile),
		},
		// The SDK sends user data verbatim, so it must already be base64.
		UserData:                          aws.String(base64.StdEncoding.EncodeToString([]byte(userData))),
		MinCount:                          aws.Int32(1),
		MaxCount:                          aws.Int32(1),
		InstanceInitiatedShutdownBehavior: types.ShutdownBehaviorTerminate,
		TagSpecifications: []types.TagSpecification{{
			ResourceType: types.ResourceTypeInstance,
			Tags:         compute.Tags(proofDir, key),
		}},
	}

	if cfg.EC2KeyName != "" {
		input.KeyName = aws.String(cfg.EC2KeyName)
	}
	if dryRun {
		input.DryRun = aws.Bool(true)
	}

	return input
}

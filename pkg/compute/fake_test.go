package compute

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

type fakeAPI struct {
	describeInputs  []*ec2.DescribeInstancesInput
	describePages   []*ec2.DescribeInstancesOutput
	terminateInputs []*ec2.TerminateInstancesInput
	err             error
}

func (f *fakeAPI) RunInstances(ctx context.Context, params *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error) {
	return nil, f.err
}

func (f *fakeAPI) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.describeInputs = append(f.describeInputs, params)
	if f.err != nil {
		return nil, f.err
	}
	page := f.describePages[len(f.describeInputs)-1]
	return page, nil
}

func (f *fakeAPI) TerminateInstances(ctx context.Context, params *ec2.TerminateInstancesInput, optFns ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error) {
	f.terminateInputs = append(f.terminateInputs, params)
	return &ec2.TerminateInstancesOutput{}, f.err
}

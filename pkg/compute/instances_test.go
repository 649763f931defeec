package compute

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
)

func instance(id, proofDir string) types.Instance {
	return types.Instance{
		InstanceId: aws.String(id),
		State:      &types.InstanceState{Name: types.InstanceStateNameRunning},
		Tags:       Tags(proofDir, proofDir+"/private_ledger.json"),
	}
}

func TestListLaunched_FiltersByProofDir(t *testing.T) {
	api := &fakeAPI{
		describePages: []*ec2.DescribeInstancesOutput{{
			Reservations: []types.Reservation{{Instances: []types.Instance{instance("i-1", "runs/a")}}},
		}},
	}
	client := NewClientWithAPI(api)

	got, err := client.ListLaunched(context.Background(), "runs/a", false)
	if err != nil {
		t.Fatalf("ListLaunched failed: %v", err)
	}

	if len(got) != 1 || got[0].ID != "i-1" || got[0].ProofDir != "runs/a" || got[0].State != "running" {
		t.Errorf("unexpected instances: %+v", got)
	}
	if got[0].SourceKey != "runs/a/private_ledger.json" {
		t.Errorf("source key = %q", got[0].SourceKey)
	}

	filters := api.describeInputs[0].Filters
	if len(filters) != 3 {
		t.Fatalf("expected 3 filters, got %d", len(filters))
	}
	if aws.ToString(filters[2].Name) != "tag:ProofDir" || !reflect.DeepEqual(filters[2].Values, []string{"runs/a"}) {
		t.Errorf("unexpected proof dir filter: %+v", filters[2])
	}
}

func TestListLaunched_AllPaginates(t *testing.T) {
	api := &fakeAPI{
		describePages: []*ec2.DescribeInstancesOutput{
			{
				Reservations: []types.Reservation{{Instances: []types.Instance{instance("i-1", "a")}}},
				NextToken:    aws.String("page-2"),
			},
			{
				Reservations: []types.Reservation{{Instances: []types.Instance{instance("i-2", "b"), instance("i-3", "")}}},
			},
		},
	}
	client := NewClientWithAPI(api)

	got, err := client.ListLaunched(context.Background(), "", true)
	if err != nil {
		t.Fatalf("ListLaunched failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 instances, got %d", len(got))
	}
	if len(api.describeInputs[0].Filters) != 2 {
		t.Errorf("--all should not filter by proof dir")
	}
}

func TestTerminate(t *testing.T) {
	api := &fakeAPI{}
	client := NewClientWithAPI(api)

	if err := client.Terminate(context.Background(), nil); err != nil {
		t.Errorf("empty terminate should be a no-op: %v", err)
	}
	if len(api.terminateInputs) != 0 {
		t.Error("empty terminate should not call EC2")
	}

	if err := client.Terminate(context.Background(), []string{"i-1", "i-2"}); err != nil {
		t.Fatalf("Terminate failed: %v", err)
	}
	if !reflect.DeepEqual(api.terminateInputs[0].InstanceIds, []string{"i-1", "i-2"}) {
		t.Errorf("unexpected ids: %v", api.terminateInputs[0].InstanceIds)
	}
}

func TestTags(t *testing.T) {
	tags := Tags("", "ledger.json")
	got := map[string]string{}
	for _, tag := range tags {
		got[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}

	want := map[string]string{
		TagName:       "proof-root",
		TagLaunchedBy: LaunchedByValue,
		TagProofDir:   "",
		TagSourceKey:  "ledger.json",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tags() = %v, want %v", got, want)
	}
}

func TestIsDryRunSuccess(t *testing.T) {
	dryRun := &smithy.GenericAPIError{Code: "DryRunOperation", Message: "Request would have succeeded"}
	denied := &smithy.GenericAPIError{Code: "UnauthorizedOperation"}

	if !IsDryRunSuccess(fmt.Errorf("wrapped: %w", dryRun)) {
		t.Error("expected DryRunOperation to count as success")
	}
	if IsDryRunSuccess(denied) {
		t.Error("UnauthorizedOperation is not a dry-run success")
	}
	if IsDryRunSuccess(fmt.Errorf("plain")) {
		t.Error("plain error is not a dry-run success")
	}
}

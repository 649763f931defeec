package launcher

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/proofworks/proof-launcher/pkg/errors"
)

// Result is the payload returned to the trigger after a batch succeeds.
type Result struct {
	StatusCode  int      `json:"statusCode"`
	Body        string   `json:"body"`
	InstanceIDs []string `json:"instanceIds"`
}

func newResult(ids []string) Result {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "'" + id + "'"
	}
	return Result{
		StatusCode:  http.StatusOK,
		Body:        fmt.Sprintf("Successfully launched %d instance(s): [%s]", len(ids), strings.Join(quoted, ", ")),
		InstanceIDs: ids,
	}
}

func newDryRunResult(records int) Result {
	return Result{
		StatusCode:  http.StatusOK,
		Body:        fmt.Sprintf("Dry run: %d launch request(s) would have succeeded", records),
		InstanceIDs: []string{},
	}
}

// LaunchError reports the record that stopped a batch.
type LaunchError struct {
	Index int // 1-based position in the batch
	Key   string
	Err   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch instance for record %d (%s): %v", e.Index, e.Key, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Is makes a LaunchError match errors.ErrProvision.
func (e *LaunchError) Is(target error) bool {
	return target == errors.ErrProvision
}

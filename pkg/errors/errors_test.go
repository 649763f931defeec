package errors

import (
	"fmt"
	"testing"
)

func TestWrap(t *testing.T) {
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	base := fmt.Errorf("boom")
	err := Wrap(base, "launch failed")
	if err.Error() != "launch failed: boom" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !Is(err, base) {
		t.Error("wrapped error should match its cause")
	}
}

func TestKindsAreDistinct(t *testing.T) {
	err := Wrap(ErrProvision, "record 1")
	if !Is(err, ErrProvision) {
		t.Error("expected ErrProvision")
	}
	if Is(err, ErrConfig) {
		t.Error("provisioning error must not match ErrConfig")
	}
}

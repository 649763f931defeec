package security

import (
	"testing"
)

func TestValidateKey(t *testing.T) {
	v := NewValidator(MaxUserDataSize)

	tests := []struct {
		key       string
		shouldErr bool
	}{
		{"proof-runs/2024-01-15/private_ledger.json", false},
		{"ledger.json", false},
		{"a b/c+d/private_ledger.json", false},
		{"", true},
		{"/etc/passwd", true},
		{"../other/private_ledger.json", true},
		{"runs/../../x.json", true},
		{"runs..ok/file.json", false},
		{`runs/"; rm -rf /; "/x.json`, true},
		{"runs/$(id)/x.json", true},
		{"runs/`id`/x.json", true},
		{"runs/a\\b/x.json", true},
		{"runs/a\nb/x.json", true},
	}

	for _, tt := range tests {
		err := v.ValidateKey(tt.key)
		if tt.shouldErr && err == nil {
			t.Errorf("expected error for key: %q", tt.key)
		}
		if !tt.shouldErr && err != nil {
			t.Errorf("unexpected error for key %q: %v", tt.key, err)
		}
	}
}

func TestValidateProofDir(t *testing.T) {
	v := NewValidator(MaxUserDataSize)

	tests := []struct {
		dir       string
		shouldErr bool
	}{
		{"", false},
		{"proof-runs/2024-01-15", false},
		{"proof-runs//2024", true},
		{"proof-runs/./2024", true},
		{"proof-runs/", true},
		{"..", true},
	}

	for _, tt := range tests {
		err := v.ValidateProofDir(tt.dir)
		if tt.shouldErr && err == nil {
			t.Errorf("expected error for dir: %q", tt.dir)
		}
		if !tt.shouldErr && err != nil {
			t.Errorf("unexpected error for dir %q: %v", tt.dir, err)
		}
	}
}

func TestValidateUserDataSize(t *testing.T) {
	v := NewValidator(100)

	if err := v.ValidateUserDataSize(100); err != nil {
		t.Errorf("expected no error at the limit, got: %v", err)
	}

	if err := v.ValidateUserDataSize(101); err == nil {
		t.Error("expected error for size 101 exceeding limit 100")
	}
}

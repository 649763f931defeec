package security

import (
	"fmt"
	"log/slog"
	"path"
	"strings"
)

// MaxUserDataSize is the EC2 limit on raw user data, before base64 encoding.
const MaxUserDataSize = 16 * 1024

// shellUnsafe are characters that would escape the double-quoted
// PROOF_DIR="..." assignment in the boot script.
const shellUnsafe = "\"`$\\\n\r\x00"

// Validator checks untrusted event input before it reaches a boot script.
type Validator struct {
	maxUserDataSize int
}

// NewValidator creates a new security validator
func NewValidator(maxUserDataSize int) *Validator {
	slog.Info("security_validator_init", "max_user_data_bytes", maxUserDataSize)

	return &Validator{
		maxUserDataSize: maxUserDataSize,
	}
}

// ValidateKey checks an object key for path traversal and for characters
// that are unsafe inside the rendered script.
func (v *Validator) ValidateKey(key string) error {
	if key == "" {
		slog.Error("security_key_validation_failed", "key", key, "reason", "empty_key")
		return fmt.Errorf("security: empty object key")
	}

	// Reject absolute paths
	if strings.HasPrefix(key, "/") {
		slog.Error("security_key_validation_failed", "key", key, "reason", "absolute_path")
		return fmt.Errorf("security: absolute key not allowed: %s", key)
	}

	// Any ".." segment could walk out of the proof directory
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			slog.Error("security_key_validation_failed", "key", key, "reason", "path_traversal")
			return fmt.Errorf("security: path traversal detected: %s", key)
		}
	}

	if i := strings.IndexAny(key, shellUnsafe); i >= 0 {
		slog.Error("security_key_validation_failed", "key", key, "reason", "shell_metacharacter", "offset", i)
		return fmt.Errorf("security: key contains shell metacharacter %q at offset %d", key[i], i)
	}

	return nil
}

// ValidateProofDir checks a derived proof directory. The directory of a
// valid key is always valid; this guards callers that take a directory
// directly, such as the CLI.
func (v *Validator) ValidateProofDir(dir string) error {
	if dir == "" {
		return nil
	}
	if path.Clean(dir) != dir {
		slog.Error("security_proof_dir_validation_failed", "proof_dir", dir, "reason", "not_clean")
		return fmt.Errorf("security: proof directory is not a clean path: %s", dir)
	}
	return v.ValidateKey(dir)
}

// ValidateUserDataSize checks rendered user data against the EC2 limit.
func (v *Validator) ValidateUserDataSize(size int) error {
	if size > v.maxUserDataSize {
		slog.Error("security_user_data_size_exceeded",
			"size_bytes", size,
			"max_size_bytes", v.maxUserDataSize)
		return fmt.Errorf("security: user data size %d exceeds max %d", size, v.maxUserDataSize)
	}
	return nil
}

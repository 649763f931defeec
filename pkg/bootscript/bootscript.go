// Package bootscript renders the EC2 user data that runs a proof job.
//
// The workload templates are opaque shell text. Fields that are fixed for
// the life of the process (bucket, region, account, image) are baked in once
// by New; the proof directory is substituted per event by Render.
package bootscript

import (
	"bytes"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/proofworks/proof-launcher/pkg/errors"
)

// Placeholder is the token replaced with the proof directory of each event.
const Placeholder = "{{PROOF_DIR}}"

// Template names
const (
	Native    = "native.sh.tmpl"
	Container = "container.sh.tmpl"
)

//go:embed templates/*.sh.tmpl
var templates embed.FS

// Params are the startup fields baked into a template.
type Params struct {
	Bucket    string
	Region    string
	AccountID string
	ImageURI  string
}

// Script is a template with all startup fields already applied. It is
// immutable and safe to share between invocations.
type Script struct {
	name  string
	baked string
}

// New bakes params into the named embedded template.
func New(name string, params Params) (*Script, error) {
	raw, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return nil, errors.Wrap(err, "unknown boot script template")
	}

	// Custom delimiters keep the literal {{PROOF_DIR}} placeholder intact.
	tmpl, err := template.New(name).Delims("<%", "%>").Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse boot script template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return nil, errors.Wrap(err, "failed to bake boot script template")
	}

	baked := buf.String()
	if !strings.Contains(baked, Placeholder) {
		return nil, fmt.Errorf("boot script template %s has no %s placeholder", name, Placeholder)
	}

	slog.Info("boot_script_baked", "template", name, "bucket", params.Bucket, "region", params.Region, "size_bytes", len(baked))

	return &Script{name: name, baked: baked}, nil
}

// Name returns the template the script was built from.
func (s *Script) Name() string {
	return s.name
}

// Render returns the boot script for one proof directory.
func (s *Script) Render(proofDir string) string {
	return Render(s.baked, proofDir)
}

// Render substitutes proofDir for every placeholder in tmpl.
func Render(tmpl, proofDir string) string {
	return strings.ReplaceAll(tmpl, Placeholder, proofDir)
}

// ProofDir returns key without its final path segment.
// "proof-runs/2024-01-15/private_ledger.json" -> "proof-runs/2024-01-15"
// "ledger.json" -> ""
func ProofDir(key string) string {
	i := strings.LastIndex(key, "/")
	if i < 0 {
		return ""
	}
	return key[:i]
}

// Package render turns an ImageMap into the GitHub Actions workflow document.
//
// The workflow template is embedded in the binary (see internal/templates)
// and parsed once per Renderer. Rendering is a pure function of the ImageMap
// and the Renderer's options, so the same input always yields the same bytes.
package render

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/duyet/i/internal/scan"
	"github.com/duyet/i/internal/templates"
)

// Defaults substituted into the workflow when no Option overrides them.
const (
	DefaultBranch     = "master"
	DefaultOutputPath = ".github/workflows/ci.yaml"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithBranches sets the branches whose pushes trigger the workflow. Blank
// names are dropped; an empty result keeps the default.
func WithBranches(branches ...string) Option {
	return func(r *Renderer) {
		var kept []string
		for _, b := range branches {
			if b = strings.TrimSpace(b); b != "" {
				kept = append(kept, b)
			}
		}
		if len(kept) > 0 {
			r.branches = kept
		}
	}
}

// WithOutputPath sets the workflow path listed in the change filter, so
// edits to the generated file rebuild every image.
func WithOutputPath(path string) Option {
	return func(r *Renderer) {
		if path = strings.TrimSpace(path); path != "" {
			r.outputPath = path
		}
	}
}

// WithDescriptor sets the build file name passed to the build step.
func WithDescriptor(name string) Option {
	return func(r *Renderer) {
		if name = strings.TrimSpace(name); name != "" {
			r.descriptor = name
		}
	}
}

// Renderer renders workflow documents from a parsed template.
type Renderer struct {
	tpl        *pongo2.Template
	branches   []string
	outputPath string
	descriptor string
}

// New parses the embedded workflow template. An error here means the
// template shipped in the binary is broken.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		branches:   []string{DefaultBranch},
		outputPath: DefaultOutputPath,
		descriptor: scan.DefaultDescriptor,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}

	set := pongo2.NewSet("cigen", pongo2.NewFSLoader(templates.Workflow))
	tpl, err := set.FromFile(templates.WorkflowFile)
	if err != nil {
		return nil, fmt.Errorf("parse workflow template: %w", err)
	}
	r.tpl = tpl
	return r, nil
}

// Render returns the workflow document for m. A nil or empty map renders the
// header with an empty jobs mapping.
func (r *Renderer) Render(m *scan.ImageMap) ([]byte, error) {
	ctx := pongo2.Context{
		"projects":   m.Projects(),
		"branches":   r.branches,
		"output":     r.outputPath,
		"descriptor": r.descriptor,
	}
	out, err := r.tpl.ExecuteBytes(ctx)
	if err != nil {
		return nil, fmt.Errorf("render workflow: %w", err)
	}
	return out, nil
}

// Package templates holds the embedded templates used by cigen.
// All templates are compiled into the binary at build time via //go:embed.
//
// workflow/ holds the GitHub Actions workflow template, written in Jinja
// syntax and executed with pongo2. Regions wrapped in {% verbatim %} are
// copied to the output unchanged so GitHub expressions such as
// ${{ matrix.tags }} survive rendering.
package templates

import "embed"

// WorkflowFile is the path of the workflow template inside Workflow.
const WorkflowFile = "workflow/ci.yaml.j2"

// Workflow holds the workflow templates.
//
//go:embed workflow
var Workflow embed.FS

// Package templates provides embedded YAML configuration templates.
package templates

import _ "embed"

// ConfigYAML contains the default seqdb.yaml template for application
// configuration.
//
//go:embed seqdb.yaml
var ConfigYAML string

// FacilitiesYAML contains the default facilities.yaml template with an
// example sequencing facility profile.
//
//go:embed facilities.yaml
var FacilitiesYAML string

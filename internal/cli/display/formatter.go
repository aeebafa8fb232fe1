// Package display formats numeral API responses for the CLI.
package display

import (
	"io"
)

// OutputFormat represents the different output formats supported
type OutputFormat string

const (
	TableFormat OutputFormat = "table"
	JSONFormat  OutputFormat = "json"
	YAMLFormat  OutputFormat = "yaml"
)

// LegalOutputFormats lists the values accepted by the --output flag.
var LegalOutputFormats = []string{string(TableFormat), string(JSONFormat), string(YAMLFormat)}

// OutputFormatter defines the interface for formatting and displaying data
type OutputFormatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates a new formatter based on the output format
func NewFormatter(format OutputFormat) OutputFormatter {
	switch format {
	case JSONFormat:
		return &JSONFormatter{}
	case YAMLFormat:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

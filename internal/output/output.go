// Package output renders CLI results as YAML or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding for CLI output.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// current is set by the root command's --output flag.
var current = FormatYAML

// SetFormat sets the global output format; unknown values fall back to YAML.
func SetFormat(format string) {
	switch format {
	case "json":
		current = FormatJSON
	default:
		current = FormatYAML
	}
}

// GetFormat returns the current global output format.
func GetFormat() Format { return current }

// Print writes data to stdout in the configured format.
func Print(data any) error {
	return Fprint(os.Stdout, current, data)
}

// Fprint writes data to w in the given format.
func Fprint(w io.Writer, format Format, data any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

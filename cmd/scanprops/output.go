// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/scanprops/scanprops/internal/config"
	"github.com/scanprops/scanprops/internal/props"
)

// writeProperties encodes the flat property map in format. Every format
// writes keys in sorted order.
func writeProperties(w io.Writer, format config.OutputFormat, m map[string]string) error {
	switch format {
	case config.FormatProperties:
		return props.WriteProperties(w, m)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(m)
	case config.FormatTOML:
		enc := toml.NewEncoder(w)
		return enc.Encode(m)
	default:
		return &config.InvalidOutputFormatError{Value: format}
	}
}

// parseFormat validates a --format value.
func parseFormat(s string) (config.OutputFormat, error) {
	f := config.OutputFormat(s)
	if ok, errs := f.IsValid(); !ok {
		return "", fmt.Errorf("--format: %w", errs[0])
	}
	return f, nil
}

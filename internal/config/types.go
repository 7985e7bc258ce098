// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// FormatProperties writes a Java .properties document.
	FormatProperties OutputFormat = "properties"
	// FormatJSON writes a flat JSON object.
	FormatJSON OutputFormat = "json"
	// FormatTOML writes a flat TOML table.
	FormatTOML OutputFormat = "toml"

	// DefaultParamsVar is the environment variable read for environment overrides.
	DefaultParamsVar = "SONARQUBE_SCANNER_PARAMS"
	// DefaultDescriptorName is the build descriptor looked up in sub-module directories.
	DefaultDescriptorName = "pom.xml"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the CLI palette.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutputFormat selects how the flat property map is written.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Output configures result rendering
		Output OutputConfig `json:"output" mapstructure:"output"`
		// Scan configures the optional analysis features
		Scan ScanConfig `json:"scan" mapstructure:"scan"`
		// Env configures the environment override tier
		Env EnvConfig `json:"env" mapstructure:"env"`
		// Reactor configures module matching
		Reactor ReactorConfig `json:"reactor" mapstructure:"reactor"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging and error chains
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// OutputConfig configures result rendering.
	OutputConfig struct {
		// Format is the default --format value
		Format OutputFormat `json:"format" mapstructure:"format"`
	}

	// ScanConfig configures the optional analysis features.
	ScanConfig struct {
		// ScanAll crawls the project for files outside every module's sources
		ScanAll bool `json:"scan_all" mapstructure:"scan_all"`
		// Exclusions are doublestar globs skipped by the crawl
		Exclusions []string `json:"exclusions" mapstructure:"exclusions"`
		// SCMLinks infers sonar.links.scm from the enclosing git repository
		SCMLinks bool `json:"scm_links" mapstructure:"scm_links"`
	}

	// EnvConfig configures the environment override tier.
	EnvConfig struct {
		// ParamsVar names the variable holding the JSON overrides
		ParamsVar string `json:"params_var" mapstructure:"params_var"`
	}

	// ReactorConfig configures module matching.
	ReactorConfig struct {
		// DescriptorName is looked up under directory sub-module references
		DescriptorName string `json:"descriptor_name" mapstructure:"descriptor_name"`
	}
)

// String returns the color scheme name.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the format name.
func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the OutputFormat is supported.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case FormatProperties, FormatJSON, FormatTOML:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

// Error implements the error interface.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: properties, json, toml)", e.Value)
}

// Unwrap returns ErrInvalidOutputFormat for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// IsValid validates the enumerated fields of the configuration.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.Output.Format.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
		Output: OutputConfig{
			Format: FormatProperties,
		},
		Scan: ScanConfig{
			ScanAll:    false,
			Exclusions: []string{},
			SCMLinks:   true,
		},
		Env: EnvConfig{
			ParamsVar: DefaultParamsVar,
		},
		Reactor: ReactorConfig{
			DescriptorName: DefaultDescriptorName,
		},
	}
}

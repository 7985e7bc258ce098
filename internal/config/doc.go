// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/scanprops/config.cue (XDG_CONFIG_HOME on Linux,
// ~/Library/Application Support/scanprops/config.cue on macOS, %APPDATA%\scanprops\config.cue
// on Windows), falling back to ./config.cue and then to built-in defaults. Files are
// validated against the embedded #Config schema (config_schema.cue) before being merged
// over the defaults.
package config

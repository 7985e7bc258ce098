// SPDX-License-Identifier: MPL-2.0

package props

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/magiconair/properties"
)

// ScannerParamsEnv is the environment variable carrying a JSON object of
// analysis properties.
const ScannerParamsEnv = "SONARQUBE_SCANNER_PARAMS"

// ErrInvalidDefine is returned for a -D value without '='.
var ErrInvalidDefine = errors.New("invalid property definition")

// ParseScannerParams decodes the JSON object carried by ScannerParamsEnv.
// An empty value yields an empty map.
func ParseScannerParams(raw string) (map[string]string, error) {
	out := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ScannerParamsEnv, err)
	}
	return out, nil
}

// LoadEnvironment builds the environment tier: the JSON object in the
// variable varName (read through getenv), completed by dotenv files.
// Dotenv entries never replace JSON entries; earlier files win over later ones.
func LoadEnvironment(getenv func(string) string, varName string, dotenvFiles ...string) (map[string]string, error) {
	if varName == "" {
		varName = ScannerParamsEnv
	}
	env, err := ParseScannerParams(getenv(varName))
	if err != nil {
		return nil, err
	}
	for _, file := range dotenvFiles {
		values, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", file, err)
		}
		for k, v := range values {
			if _, exists := env[k]; !exists {
				env[k] = v
			}
		}
	}
	return env, nil
}

// ParseDefines parses "key=value" pairs as given to -D flags.
func ParseDefines(defines []string) (map[string]string, error) {
	out := make(map[string]string, len(defines))
	for _, d := range defines {
		k, v, ok := strings.Cut(d, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q (expected key=value)", ErrInvalidDefine, d)
		}
		out[k] = v
	}
	return out, nil
}

// LoadPropertiesFile reads a Java-style .properties file. ${} references
// are kept verbatim.
func LoadPropertiesFile(path string) (map[string]string, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties file %s: %w", path, err)
	}
	return p.Map(), nil
}

// MergeUser combines -D definitions with a properties file; definitions win.
func MergeUser(defines, file map[string]string) map[string]string {
	out := maps.Clone(file)
	if out == nil {
		out = make(map[string]string, len(defines))
	}
	maps.Copy(out, defines)
	return out
}

// WriteProperties writes m as a .properties document with sorted keys.
func WriteProperties(w io.Writer, m map[string]string) error {
	p := properties.NewProperties()
	p.DisableExpansion = true
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if _, _, err := p.Set(k, m[k]); err != nil {
			return fmt.Errorf("failed to set property %s: %w", k, err)
		}
	}
	if _, err := p.Write(w, properties.UTF8); err != nil {
		return fmt.Errorf("failed to write properties: %w", err)
	}
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
)

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"
)

const (
	// CodeCrawlRootUnavailable means the project basedir could not be read.
	CodeCrawlRootUnavailable DiagnosticCode = "crawl_root_unavailable"
	// CodeCrawlEntryFailed means one entry below the basedir could not be read.
	CodeCrawlEntryFailed DiagnosticCode = "crawl_entry_failed"
	// CodeInvalidExclusion means an exclusion glob is malformed and was ignored.
	CodeInvalidExclusion DiagnosticCode = "invalid_exclusion"
	// CodeScanAllOverridden means the crawl was skipped because the root
	// module's sources were overridden.
	CodeScanAllOverridden DiagnosticCode = "scan_all_overridden"
	// CodeSCMLinkUnavailable means the SCM link could not be inferred.
	CodeSCMLinkUnavailable DiagnosticCode = "scm_link_unavailable"
)

var (
	// ErrInvalidSeverity is returned when a Severity value is not recognized.
	ErrInvalidSeverity = errors.New("invalid diagnostic severity")
	// ErrInvalidDiagnosticCode is returned when a DiagnosticCode value is not recognized.
	ErrInvalidDiagnosticCode = errors.New("invalid diagnostic code")
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// DiagnosticCode is a machine-readable diagnostic identifier.
	DiagnosticCode string

	// Diagnostic is a structured, non-fatal finding returned to callers
	// rather than written to stderr, so the CLI decides how to render it.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "crawl_entry_failed").
		Code DiagnosticCode
		// Message is the human-readable description.
		Message string
		// Path is the file path associated with this diagnostic (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityWarning, SeverityError:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidSeverity, s)}
	}
}

// String returns the code text.
func (c DiagnosticCode) String() string { return string(c) }

// IsValid reports whether c is a known diagnostic code.
func (c DiagnosticCode) IsValid() (bool, []error) {
	switch c {
	case CodeCrawlRootUnavailable, CodeCrawlEntryFailed, CodeInvalidExclusion,
		CodeScanAllOverridden, CodeSCMLinkUnavailable:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidDiagnosticCode, c)}
	}
}

// NewDiagnostic creates a Diagnostic without path or cause.
func NewDiagnostic(severity Severity, code DiagnosticCode, message string) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message}
}

// NewDiagnosticWithPath creates a Diagnostic bound to a path.
func NewDiagnosticWithPath(severity Severity, code DiagnosticCode, message, path string) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message, Path: path}
}

// NewDiagnosticWithCause creates a Diagnostic bound to a path and an underlying error.
func NewDiagnosticWithCause(severity Severity, code DiagnosticCode, message, path string, cause error) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message, Path: path, Cause: cause}
}

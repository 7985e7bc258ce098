// SPDX-License-Identifier: MPL-2.0

package types

// ExitCode is the process exit status of the scanprops binary.
type ExitCode int

const (
	// ExitSuccess is returned when the conversion completed.
	ExitSuccess ExitCode = 0
	// ExitFailure is returned when the conversion failed fatally.
	ExitFailure ExitCode = 1
	// ExitUsage is returned for invalid command-line input.
	ExitUsage ExitCode = 2
)

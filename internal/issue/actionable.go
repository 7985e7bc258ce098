// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/scanprops/scanprops/pkg/types"
)

type (
	// ActionableError is a user-facing failure of one conversion step. It names
	// the step, the manifest or file involved, the modules concerned and what
	// the user can change to get past it.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("flatten module hierarchy").
	//		WithResource("./reactor.cue").
	//		WithModules("com.acme:tools").
	//		WithIssue(issue.OrphanModuleId).
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "load reactor manifest".
		Operation string
		// Resource is the manifest, properties or output file involved.
		Resource string
		// Modules lists the modules the failure is about, in report order.
		Modules []types.ModuleKey
		// Suggestions are rendered as a bullet list by Format.
		Suggestions []string
		Cause       error
		// Issue links the error to its `scanprops explain` entry.
		Issue Id
	}

	// ErrorContext accumulates the fields of an ActionableError.
	ErrorContext struct {
		operation   string
		resource    string
		modules     []types.ModuleKey
		suggestions []string
		cause       error
		issue       Id
	}
)

// NewErrorContext starts an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error returns the one-line form: failed to <operation>: <resource>: <cause>.
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the cause.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the error for the terminal:
//
//	failed to <operation>: <resource>: <cause>
//	  modules: <key>, <key>
//
//	  • <suggestion>
//
//	Run 'scanprops explain <issue>' for details.
//
// Verbose output appends the numbered cause chain.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if len(e.Modules) > 0 {
		keys := make([]string, len(e.Modules))
		for i, k := range e.Modules {
			keys[i] = k.String()
		}
		msg.WriteString("\n  modules: ")
		msg.WriteString(strings.Join(keys, ", "))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
	}

	if e.Issue != 0 {
		fmt.Fprintf(&msg, "\n\nRun 'scanprops explain %s' for details.", e.Issue)
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}

	return msg.String()
}

// WithOperation sets the failed step. Build returns nil without one.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the file involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithModules appends module keys, skipping ones already recorded.
func (c *ErrorContext) WithModules(keys ...types.ModuleKey) *ErrorContext {
	for _, k := range keys {
		if k != "" && !slices.Contains(c.modules, k) {
			c.modules = append(c.modules, k)
		}
	}
	return c
}

// WithSuggestion appends one suggestion.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithSuggestions appends several suggestions in order.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.suggestions = append(c.suggestions, sugs...)
	return c
}

// WithIssue tags the error with a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

// Wrap sets the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build returns the ActionableError, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Modules:     c.modules,
		Suggestions: c.suggestions,
		Cause:       c.cause,
		Issue:       c.issue,
	}
}

// BuildError is Build returned as an error, keeping a nil result untyped.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/scanprops/scanprops/internal/issue"
	"github.com/scanprops/scanprops/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scanprops",
		Short: "Flatten a build reactor into code analysis properties",
		Long: TitleStyle.Render("scanprops") + SubtitleStyle.Render(" - Flatten a build reactor into code analysis properties") + `

scanprops reads a reactor manifest (reactor.cue) describing a multi-module
build and prints the flat, prefix-keyed property map a code analysis
scanner consumes: one entry set per module, source and test roots, and
the sonar.modules hierarchy.

Overrides apply in order: -D flags and --properties, then
SONARQUBE_SCANNER_PARAMS and --env-file, then module-local properties.

` + SubtitleStyle.Render("Examples:") + `
  scanprops flatten                    Flatten ./reactor.cue
  scanprops flatten -D sonar.sources=src --format json
  scanprops modules                    Show the module tree
  scanprops explain orphan-module      Explain a reported issue`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.loadConfig(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/scanprops/config.cue)")

	rootCmd.AddCommand(newFlattenCommand(app))
	rootCmd.AddCommand(newModulesCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newExplainCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// failed renders err for the user and turns it into an ExitError so the
// error is not printed twice.
func (a *App) failed(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: types.ExitFailure, Err: err}
}

// usageFailed reports invalid command-line input.
func (a *App) usageFailed(cmd *cobra.Command, err error) error {
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+err.Error())
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: types.ExitUsage, Err: err}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

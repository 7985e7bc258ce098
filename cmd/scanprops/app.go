// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"

	"github.com/scanprops/scanprops/internal/config"
	"github.com/scanprops/scanprops/internal/convert"
	"github.com/scanprops/scanprops/internal/discovery"
)

type (
	// App wires CLI services and shared dependencies. All Cobra handlers
	// receive an App and delegate through it.
	App struct {
		Config         config.Provider
		convertOptions []convert.Option
		stdout         io.Writer
		stderr         io.Writer

		// set by the root command before any subcommand runs
		verbose bool
		cfgFile string
		cfg     *config.Config
		logger  *slog.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config         config.Provider
		ConvertOptions []convert.Option
		Stdout         io.Writer
		Stderr         io.Writer
	}
)

// NewApp creates an App from deps.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:         deps.Config,
		convertOptions: deps.ConvertOptions,
		stdout:         deps.Stdout,
		stderr:         deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	app.logger = newLogger(app.stderr, false)
	return app
}

// loadConfig reads the configuration. A broken config file is reported as a
// warning and defaults are used instead.
func (a *App) loadConfig(ctx context.Context) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.cfgFile})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		cfg = config.DefaultConfig()
	}
	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}
	a.cfg = cfg
	a.logger = newLogger(a.stderr, a.verbose)
}

// config returns the loaded configuration, or defaults before loading.
func (a *App) config() *config.Config {
	if a.cfg == nil {
		return config.DefaultConfig()
	}
	return a.cfg
}

func (a *App) converter() *convert.Converter {
	opts := append([]convert.Option{convert.WithLogger(a.logger)}, a.convertOptions...)
	return convert.New(opts...)
}

// renderDiagnostics writes non-fatal findings to stderr.
func (a *App) renderDiagnostics(diags []discovery.Diagnostic) {
	for _, d := range diags {
		line := WarningStyle.Render("Warning: ") + d.Message
		if d.Path != "" {
			line += " " + SubtitleStyle.Render("("+d.Path+")")
		}
		if a.verbose && d.Cause != nil {
			line += "\n  " + SubtitleStyle.Render(d.Cause.Error())
		}
		fmt.Fprintln(a.stderr, line)
	}
}

// newLogger returns an slog logger backed by a charmbracelet/log handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "scanprops",
	})
	return slog.New(handler)
}

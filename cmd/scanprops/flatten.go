// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/scanprops/scanprops/internal/config"
	"github.com/scanprops/scanprops/internal/convert"
	"github.com/scanprops/scanprops/internal/issue"
	"github.com/scanprops/scanprops/pkg/reactor"
)

type (
	// conversionFlags are shared by every command that runs a conversion.
	conversionFlags struct {
		defines        []string
		propertiesFile string
		envFiles       []string
		scanAll        bool
		exclusions     []string
		noSCMLinks     bool
	}

	flattenFlags struct {
		conversionFlags
		format string
		output string
	}
)

func newFlattenCommand(app *App) *cobra.Command {
	var flags flattenFlags

	cmd := &cobra.Command{
		Use:   "flatten [manifest]",
		Short: "Print the flat analysis properties of a reactor",
		Long: `Print the flat analysis properties of a reactor.

The manifest argument is a reactor.cue file or a directory holding one
(default: the current directory).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := app.config().Output.Format
			if cmd.Flags().Changed("format") {
				f, err := parseFormat(flags.format)
				if err != nil {
					return app.usageFailed(cmd, err)
				}
				format = f
			}
			return app.failed(cmd, runFlatten(cmd.Context(), app, manifestArg(args), format, flags))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: properties, json or toml (default from config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func (f *conversionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.defines, "define", "D", nil, "user property override key=value (repeatable)")
	cmd.Flags().StringVar(&f.propertiesFile, "properties", "", "read user property overrides from a .properties file")
	cmd.Flags().StringArrayVar(&f.envFiles, "env-file", nil, "merge a dotenv file into the environment overrides (repeatable)")
	cmd.Flags().BoolVar(&f.scanAll, "scan-all", false, "add files no module covers to the root sources")
	cmd.Flags().StringArrayVar(&f.exclusions, "exclude", nil, "glob skipped by --scan-all (repeatable)")
	cmd.Flags().BoolVar(&f.noSCMLinks, "no-scm-links", false, "do not infer sonar.links.scm from git")
}

// request merges the flags over the loaded configuration.
func (f *conversionFlags) request(cfg *config.Config, manifest string) convert.Request {
	return convert.Request{
		ManifestPath:   manifest,
		Defines:        f.defines,
		PropertiesFile: f.propertiesFile,
		ParamsVar:      cfg.Env.ParamsVar,
		EnvFiles:       f.envFiles,
		ScanAll:        f.scanAll || cfg.Scan.ScanAll,
		Exclusions:     append(append([]string(nil), cfg.Scan.Exclusions...), f.exclusions...),
		SCMLinks:       cfg.Scan.SCMLinks && !f.noSCMLinks,
		DescriptorName: cfg.Reactor.DescriptorName,
	}
}

func manifestArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return reactor.ManifestName
}

func runFlatten(ctx context.Context, app *App, manifest string, format config.OutputFormat, flags flattenFlags) error {
	res, err := app.converter().Run(ctx, flags.request(app.config(), manifest))
	if err != nil {
		return err
	}
	app.renderDiagnostics(res.Diagnostics)

	var buf bytes.Buffer
	if err := writeProperties(&buf, format, res.Properties); err != nil {
		return err
	}

	if flags.output == "" {
		_, err := app.stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(flags.output, buf.Bytes(), 0o644); err != nil {
		return issue.NewErrorContext().
			WithOperation("write properties").
			WithResource(flags.output).
			WithSuggestion("Check that the parent directory exists and is writable").
			WithIssue(issue.OutputWriteFailedId).
			Wrap(err).
			BuildError()
	}
	app.logger.Debug("properties written", "path", flags.output, "count", len(res.Properties))
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scanprops/scanprops/internal/config"
)

// newConfigCommand creates the `scanprops config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage scanprops configuration",
		Long: `Manage scanprops configuration.

Configuration is stored in:
  - Linux: ~/.config/scanprops/config.cue
  - macOS: ~/Library/Application Support/scanprops/config.cue
  - Windows: %APPDATA%\scanprops\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.failed(cmd, showConfig(cmd.Context(), app))
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return app.failed(cmd, err)
			}
			fmt.Fprintf(app.stdout, "%s Configuration file at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return app.failed(cmd, err)
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
			fmt.Fprintf(app.stdout, "Config file: %s\n", app.configFileLabel())
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(app.stdout, config.GenerateCUE(app.config()))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: app.cfgFile})
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), app.configFileLabel())
	fmt.Fprintln(app.stdout)

	sections := []struct {
		name   string
		values [][2]string
	}{
		{"ui", [][2]string{
			{"verbose", fmt.Sprintf("%v", cfg.UI.Verbose)},
			{"color_scheme", cfg.UI.ColorScheme.String()},
		}},
		{"output", [][2]string{
			{"format", cfg.Output.Format.String()},
		}},
		{"scan", [][2]string{
			{"scan_all", fmt.Sprintf("%v", cfg.Scan.ScanAll)},
			{"exclusions", "[" + strings.Join(cfg.Scan.Exclusions, ", ") + "]"},
			{"scm_links", fmt.Sprintf("%v", cfg.Scan.SCMLinks)},
		}},
		{"env", [][2]string{
			{"params_var", cfg.Env.ParamsVar},
		}},
		{"reactor", [][2]string{
			{"descriptor_name", cfg.Reactor.DescriptorName},
		}},
	}
	for _, s := range sections {
		fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render(s.name))
		for _, kv := range s.values {
			fmt.Fprintf(app.stdout, "  %s: %s\n", kv[0], valueStyle.Render(kv[1]))
		}
	}
	return nil
}

// configFileLabel names the config file in use, or notes that defaults apply.
func (a *App) configFileLabel() string {
	path, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: a.cfgFile})
	if err != nil || path == "" {
		return SubtitleStyle.Render("(using defaults)")
	}
	return path
}

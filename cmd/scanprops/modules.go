// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/scanprops/scanprops/internal/convert"
	"github.com/scanprops/scanprops/internal/graph"
	"github.com/scanprops/scanprops/internal/props"
)

func newModulesCommand(app *App) *cobra.Command {
	var flags conversionFlags

	cmd := &cobra.Command{
		Use:   "modules [manifest]",
		Short: "Show the analyzed module hierarchy of a reactor",
		Long: `Show the analyzed module hierarchy of a reactor.

The tree is the sonar.modules hierarchy of the flattened map. Modules
excluded with sonar.skip are listed below it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.failed(cmd, runModules(cmd.Context(), app, manifestArg(args), flags))
		},
	}

	flags.register(cmd)

	return cmd
}

func runModules(ctx context.Context, app *App, manifest string, flags conversionFlags) error {
	res, err := app.converter().Run(ctx, flags.request(app.config(), manifest))
	if err != nil {
		return err
	}
	app.renderDiagnostics(res.Diagnostics)

	fmt.Fprintln(app.stdout, moduleTree(res).String())
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s %s\n", CmdStyle.Render("Project base directory:"), res.BaseDir)

	if len(res.Skipped) > 0 {
		fmt.Fprintln(app.stdout, CmdStyle.Render("Skipped:"))
		for _, k := range res.Skipped {
			fmt.Fprintf(app.stdout, "  - %s\n", WarningStyle.Render(k.String()))
		}
	}
	return nil
}

func moduleTree(res *convert.Result) *tree.Tree {
	t := tree.Root(TitleStyle.Render(moduleLabel(res.Properties, ""))).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(SubtitleStyle)
	addModules(t, res.Properties, "")
	return t
}

// addModules appends the sonar.modules children of the module written under prefix.
func addModules(t *tree.Tree, p map[string]string, prefix string) {
	for _, key := range props.SplitList(p[prefix+graph.ModulesProperty]) {
		childPrefix := prefix + key + "."
		label := moduleLabel(p, childPrefix)
		if _, nested := p[childPrefix+graph.ModulesProperty]; nested {
			sub := tree.Root(label)
			addModules(sub, p, childPrefix)
			t.Child(sub)
			continue
		}
		t.Child(label)
	}
}

func moduleLabel(p map[string]string, prefix string) string {
	key := p[prefix+graph.ProjectKey]
	if name := p[prefix+graph.ProjectName]; name != "" && name != key {
		return key + " " + SubtitleStyle.Render("("+name+")")
	}
	return key
}

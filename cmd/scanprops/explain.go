// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scanprops/scanprops/internal/issue"
)

func newExplainCommand(app *App) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "explain [issue]",
		Short: "Explain an issue reported by scanprops",
		Long: `Explain an issue reported by scanprops.

The issue is named by the slug printed with an error (e.g.
'missing-override-path') or its number. Without an argument every
known issue is listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, i := range issue.Values() {
					fmt.Fprintf(app.stdout, "%3d  %s\n", int(i.Id()), CmdStyle.Render(i.Slug()))
				}
				return nil
			}

			id, ok := issue.ParseId(args[0])
			if !ok {
				return app.usageFailed(cmd, fmt.Errorf("unknown issue %q; run 'scanprops explain' to list issues", args[0]))
			}
			if style == "" {
				style = string(app.config().UI.ColorScheme)
			}
			rendered, err := issue.Get(id).Render(style)
			if err != nil {
				return app.failed(cmd, err)
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "glamour style: auto, dark, light or notty (default from ui.color_scheme)")

	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/Akash50142/expense-tracker/internal/tui"
	"github.com/Akash50142/expense-tracker/internal/tui/themes"
)

func dashboardCmd(opts *rootOptions) *cobra.Command {
	var (
		theme     string
		altScreen bool
	)

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Browse spending in an interactive terminal dashboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			return tui.Run(ctx, a.engine,
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithReportOptions(a.reportOptions()),
				tui.WithAltScreen(altScreen),
			)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "color theme (default, mocha)")
	cmd.Flags().BoolVar(&altScreen, "fullscreen", true, "use the terminal's alternate screen")

	return cmd
}

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Akash50142/expense-tracker/internal/api"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Serve expenses, budgets and reports over a local JSON HTTP API.

Routes:
  GET    /health
  GET    /api/expenses            ?category=&from=&to=&min=&max=&sort=&order=&match=
  POST   /api/expenses
  GET    /api/expenses/recent     ?limit=
  GET    /api/expenses/{id}
  PUT    /api/expenses/{id}
  DELETE /api/expenses/{id}
  GET    /api/budgets
  PUT    /api/budgets/{category}
  DELETE /api/budgets/{category}
  GET    /api/categories
  GET    /api/summary             ?months=&weeks=`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			listen := a.cfg.Server.Addr
			if cmd.Flags().Changed("addr") {
				listen = addr
			}

			srv := api.NewServer(a.engine, slog.Default(), a.reportOptions())
			return srv.ListenAndServe(ctx, listen)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr)")
	return cmd
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Akash50142/expense-tracker/internal/cli"
	"github.com/Akash50142/expense-tracker/internal/common"
	"github.com/Akash50142/expense-tracker/internal/config"
	"github.com/Akash50142/expense-tracker/internal/service"
	"github.com/Akash50142/expense-tracker/internal/sheets"
)

func exportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish spending reports",
	}
	cmd.AddCommand(exportSheetsCmd(opts))
	return cmd
}

func exportSheetsCmd(opts *rootOptions) *cobra.Command {
	var spreadsheetID string

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write the spending report to a Google Sheets spreadsheet",
		Long: `Write the current spending report to Google Sheets.

Authenticate either with a service account key (sheets.service_account_path)
or with OAuth2 client credentials and a token from 'spendwise auth sheets'.
Without a spreadsheet id a new spreadsheet is created.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if spreadsheetID != "" {
				opts.v.Set("sheets.spreadsheet_id", spreadsheetID)
			}
			if opts.v.GetString("sheets.refresh_token") == "" && os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN") == "" {
				if token, err := sheets.LoadToken(config.TokenFile(opts.v)); err == nil && token.RefreshToken != "" {
					opts.v.Set("sheets.refresh_token", token.RefreshToken)
				}
			}

			sheetsCfg, err := config.LoadSheetsConfig(opts.v)
			if err != nil {
				if errors.Is(err, sheets.ErrNoAuth) {
					return common.NewUserError("Google Sheets is not configured. Set sheets.service_account_path or run 'spendwise auth sheets'", err)
				}
				return err
			}

			writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
			if err != nil {
				return err
			}

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			return publishReport(cmd, writer, a.engine.Report(a.reportOptions()))
		},
	}

	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet", "", "spreadsheet id (overrides sheets.spreadsheet_id)")
	return cmd
}

func publishReport(cmd *cobra.Command, writer service.ReportWriter, report *service.Report) error {
	if err := writer.Write(cmd.Context(), report); err != nil {
		return common.NewUserError("Export failed: "+err.Error(), err)
	}
	printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Exported %d expenses (%s total)",
		report.ExpenseCount, cli.FormatCurrency(report.TotalExpenses))))
	return nil
}

func authCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}
	cmd.AddCommand(authSheetsCmd(opts))
	return cmd
}

func authSheetsCmd(opts *rootOptions) *cobra.Command {
	var callback string

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authorize spendwise to write Google Sheets",
		Long: `Run the OAuth2 consent flow for Google Sheets and store the token.

Needs sheets.client_id and sheets.client_secret (or GOOGLE_SHEETS_CLIENT_ID
and GOOGLE_SHEETS_CLIENT_SECRET). The token is written to sheets.token_file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			oauthCfg := sheets.OAuth2Config{
				ClientID:     firstNonEmpty(opts.v.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID")),
				ClientSecret: firstNonEmpty(opts.v.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")),
				TokenFile:    config.TokenFile(opts.v),
				CallbackAddr: callback,
			}
			if oauthCfg.ClientID == "" || oauthCfg.ClientSecret == "" {
				return common.NewUserError("Set sheets.client_id and sheets.client_secret first", common.ErrMissingConfig)
			}

			printLine(cmd, cli.FormatInfo("Opening the Google consent flow; follow the link printed below."))
			token, err := sheets.GetOrCreateToken(ctx, oauthCfg)
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			if err := sheets.SaveToken(oauthCfg.TokenFile, token); err != nil {
				return err
			}

			printLine(cmd, cli.FormatSuccess("Google Sheets authorized. Token saved to "+oauthCfg.TokenFile))
			return nil
		},
	}

	cmd.Flags().StringVar(&callback, "callback", sheets.DefaultCallbackAddr, "address of the local OAuth2 callback server")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

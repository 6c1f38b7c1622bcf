package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pr_tracker/internal/bigquery"
	"pr_tracker/internal/processing"
	"pr_tracker/internal/publish"
	"pr_tracker/internal/records"
	"pr_tracker/internal/sheets"

	"github.com/spf13/cobra"
)

const exportTimeout = 5 * time.Minute

// newExportService builds an export service once the retry policies are known to be usable
func (e *cliEnv) newExportService(store *records.Store) (*processing.ExportService, error) {
	if err := e.resilience.Validate(); err != nil {
		return nil, fmt.Errorf("failed to configure exports: %w", err)
	}
	return processing.NewExportService(store, e.cfg.User, e.resilience), nil
}

func newExportSheetCmd(env *cliEnv) *cobra.Command {
	var opts viewOptions

	cmd := &cobra.Command{
		Use:   "export-sheet",
		Short: "Write the filtered and sorted records to Google Sheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.cfg.SpreadsheetID == "" {
				return errors.New("PR_SPREADSHEET_ID is not set")
			}

			store, closeStore, err := env.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := opts.apply(cmd, store); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), exportTimeout)
			defer cancel()

			client, err := sheets.NewClient(ctx, env.cfg.CredentialsFile)
			if err != nil {
				return err
			}

			service, err := env.newExportService(store)
			if err != nil {
				return err
			}
			service.WithSheets(sheets.NewRecordsSheet(client), env.cfg.SpreadsheetID)

			n, err := service.ExportToSheet(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to sheet\n", n)
			return nil
		},
	}

	addViewFlags(cmd, &opts)
	return cmd
}

func newImportSheetCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "import-sheet",
		Short: "Import records from the user's Google Sheets tab",
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.cfg.SpreadsheetID == "" {
				return errors.New("PR_SPREADSHEET_ID is not set")
			}

			store, closeStore, err := env.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			ctx, cancel := context.WithTimeout(cmd.Context(), exportTimeout)
			defer cancel()

			client, err := sheets.NewClient(ctx, env.cfg.CredentialsFile)
			if err != nil {
				return err
			}

			service, err := env.newExportService(store)
			if err != nil {
				return err
			}
			service.WithSheets(sheets.NewRecordsSheet(client), env.cfg.SpreadsheetID)

			n, err := service.ImportFromSheet(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records from sheet\n", n)
			return nil
		},
	}
}

func newExportBigQueryCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "export-bigquery",
		Short: "Stream all records into BigQuery",
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.cfg.BigQueryProject == "" {
				return errors.New("PR_BIGQUERY_PROJECT is not set")
			}

			store, closeStore, err := env.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			ctx, cancel := context.WithTimeout(cmd.Context(), exportTimeout)
			defer cancel()

			client, err := bigquery.NewClient(ctx, env.cfg.BigQueryProject, env.cfg.CredentialsFile, env.cfg.BigQueryDataset, env.cfg.BigQueryTable)
			if err != nil {
				return err
			}
			defer client.Close()

			service, err := env.newExportService(store)
			if err != nil {
				return err
			}
			service.WithInserter(client)

			n, err := service.ExportToBigQuery(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to BigQuery\n", n)
			return nil
		},
	}
}

func newPublishCmd(env *cliEnv) *cobra.Command {
	var opts viewOptions
	var name string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the filtered and sorted records as a JSON snapshot over SSH",
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.cfg.PublishTarget == "" {
				return errors.New("PR_PUBLISH_TARGET is not set")
			}

			store, closeStore, err := env.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := opts.apply(cmd, store); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), exportTimeout)
			defer cancel()

			service, err := env.newExportService(store)
			if err != nil {
				return err
			}
			service.WithPublisher(publish.NewSSHPublisher(env.cfg.PublishTarget, env.cfg.PublishKeyFile))

			snapshot, err := service.PublishSnapshot(ctx, name)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Published %d records as %s\n", snapshot.Count, name)
			return nil
		},
	}

	addViewFlags(cmd, &opts)
	cmd.Flags().StringVar(&name, "name", "personal-records.json", "Remote file name")
	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"dopingplot/internal/geometry"
	"dopingplot/internal/models"
	"dopingplot/internal/reports"
	"dopingplot/internal/storage"
)

func newRenderCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the report files to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			files, err := reports.NewReportGenerator(cfg).Generate(cmd.Context())
			if err != nil {
				return err
			}

			client, err := storage.NewLocalStorageClient(outDir)
			if err != nil {
				return err
			}
			defer client.Close()

			// Flat layout: the files land directly in outDir
			files.FolderPath = ""
			if err := reports.NewStorageOrchestrator(client).StoreAllFiles(cmd.Context(), files); err != nil {
				return err
			}

			for _, name := range files.Names() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", name, len(files.Files[name]))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
	return cmd
}

func newRecordsCmd() *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "records",
		Short: "Print the normalized records as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			records, err := reports.NewRecordSource(cfg).FetchRecords(cmd.Context(), cfg.DatasetURL)
			if err != nil {
				return err
			}

			t := recordsTable(records)
			if markdown {
				fmt.Fprintln(cmd.OutOrStdout(), t.RenderMarkdown())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "render a markdown table")
	return cmd
}

func recordsTable(records []models.RaceRecord) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Year", "Time", "Name", "Nationality", "Place", "Doping"})
	for _, r := range records {
		place := ""
		if r.Place != nil {
			place = strconv.Itoa(*r.Place)
		}
		t.AppendRow(table.Row{r.Year, r.ClockTime(), r.Name, r.Nationality, place, r.DopingAllegation})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(records)})
	return t
}

func newGeometryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "geometry",
		Short: "Print the computed plot geometry as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			records, err := reports.NewRecordSource(cfg).FetchRecords(cmd.Context(), cfg.DatasetURL)
			if err != nil {
				return err
			}
			g, err := geometry.BuildGeometry(records, cfg.GeometryConfig())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(g)
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"library-catalog/export"
	"library-catalog/render"
)

func newReportCmd(a *app, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the library report and exit",
		Long:  `Log in, load the seed catalog if one is configured, and print books, patrons and transactions in the chosen format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.login(); err != nil {
				return err
			}
			report, err := a.mgr.GenerateReport(a.user)
			if err != nil {
				return err
			}
			return render.Report(a.out, a.cfg.ReportFormat, report)
		},
	}
	cmd.Flags().String("format", "", "text, json, yaml or table")
	_ = v.BindPFlag("report_format", cmd.Flags().Lookup("format"))
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the book catalog to CSV and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.login(); err != nil {
				return err
			}
			rows, err := a.mgr.ExportBooks(a.user)
			if err != nil {
				return err
			}
			if out == "" {
				out = a.cfg.CSVPath
			}
			if err := export.SaveBooks(out, rows); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved %d books to %s\n", len(rows), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "CSV file to write (default from config)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "library-catalog", version)
		},
	}
}

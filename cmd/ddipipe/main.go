package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pharmakit/interaction-checker/internal/dataset"
	"github.com/pharmakit/interaction-checker/internal/extract"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:           "ddipipe",
		Short:         "Pharmacokinetic table pipeline: PDF extraction, cleaning, export",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(extractCmd(logger), cleanCmd(logger), exportCmd(logger))

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func extractCmd(logger *slog.Logger) *cobra.Command {
	var pdfPath, outPath string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract drug rows from a PDF table into a raw CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ex := extract.NewExtractor(extract.DefaultLayoutConfig(), logger)
			records, err := ex.ExtractFile(pdfPath)
			if err != nil {
				return err
			}
			if err := extract.WriteRawCSV(outPath, records); err != nil {
				return err
			}
			logger.Info("extract.done", "pdf", pdfPath, "out", outPath, "rows", len(records))
			return nil
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "input PDF file")
	cmd.Flags().StringVar(&outPath, "out", "raw_drug_data.csv", "output CSV file")
	_ = cmd.MarkFlagRequired("pdf")
	return cmd
}

func cleanCmd(logger *slog.Logger) *cobra.Command {
	var inPath, outPath, policyName string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Normalize a raw CSV and merge duplicate drugs",
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := dataset.ParsePolicy(policyName)
			if err != nil {
				return err
			}
			table, err := dataset.ReadCSV(inPath)
			if err != nil {
				return err
			}
			before := len(table.Rows)
			merged := dataset.Merge(table, policy)
			if err := merged.WriteCSV(outPath); err != nil {
				return err
			}
			logger.Info("clean.done",
				"in", inPath,
				"out", outPath,
				"policy", policy.String(),
				"rows_in", before,
				"rows_out", len(merged.Rows),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "raw_drug_data.csv", "input CSV file")
	cmd.Flags().StringVar(&outPath, "out", "drug_data.csv", "output CSV file")
	cmd.Flags().StringVar(&policyName, "policy", "first-wins", "duplicate policy: first-wins or union-merge")
	return cmd
}

func exportCmd(logger *slog.Logger) *cobra.Command {
	var inPath, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a cleaned CSV to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := dataset.ReadCSV(inPath)
			if err != nil {
				return err
			}
			if err := table.WriteXLSX(outPath); err != nil {
				return err
			}
			logger.Info("export.done", "in", inPath, "out", outPath, "rows", len(table.Rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "drug_data.csv", "input CSV file")
	cmd.Flags().StringVar(&outPath, "out", "drug_data.xlsx", "output XLSX file")
	return cmd
}

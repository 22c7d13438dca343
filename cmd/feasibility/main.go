package main

import (
	"os"

	"github.com/spf13/cobra"
)

// shared flags
var (
	configPath string
	inputPath  string
	policy     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "feasibility",
		Short:        "Real-estate development feasibility calculator",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "engine config file (default $FEASIBILITY_CONFIG or config/feasibility.yaml)")
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "project file (.yaml or .json); default scenario when empty")
	rootCmd.PersistentFlags().StringVar(&policy, "policy", "", "cash flow policy: front_loaded or spread_construction")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(saveCmd())
	rootCmd.AddCommand(byelawsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute and print the feasibility report",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runReport(format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, markdown, html or json")
	return cmd
}

func exportCmd() *cobra.Command {
	var xlsxPath, pdfPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the report as an XLSX workbook and/or a PDF",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runExport(xlsxPath, pdfPath)
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "workbook output path")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "PDF output path")
	return cmd
}

func saveCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Compute the report and persist it to the report store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSave(cmd.Context(), name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "label stored with the report")
	return cmd
}

func byelawsCmd() *cobra.Command {
	var outputDir string

	extract := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract sections, clauses, FSI rules and penalties from bye-law text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runByelawsExtract(cmd.Context(), path, outputDir)
		},
	}
	extract.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default $OUTPUT_DIR or outputs)")

	cmd := &cobra.Command{
		Use:   "byelaws",
		Short: "Building bye-law tooling",
	}
	cmd.AddCommand(extract)
	return cmd
}

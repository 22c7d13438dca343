package main

import (
	"context"
	"fmt"
	"os"

	"realty_feasibility/pkg/core/byelaws"
	"realty_feasibility/pkg/core/config"
	"realty_feasibility/pkg/core/feasibility"
	"realty_feasibility/pkg/core/input"
	"realty_feasibility/pkg/core/llm"
	"realty_feasibility/pkg/core/report"
	"realty_feasibility/pkg/core/store"
)

// evaluate loads config and inputs and runs the engine.
func evaluate() (*feasibility.Report, config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, cfg, err
	}
	in, err := input.LoadFile(inputPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("loading inputs: %w", err)
	}

	opts := cfg.Options()
	if policy != "" {
		opts.Policy = feasibility.CashFlowPolicy(policy)
	}
	rep, err := feasibility.Run(in, opts)
	if err != nil {
		return nil, cfg, err
	}
	return rep, cfg, nil
}

func runReport(format string) error {
	rep, _, err := evaluate()
	if err != nil {
		return err
	}
	return report.Write(os.Stdout, rep, report.Format(format))
}

func runExport(xlsxPath, pdfPath string) error {
	if xlsxPath == "" && pdfPath == "" {
		return fmt.Errorf("nothing to export: pass --xlsx and/or --pdf")
	}
	rep, _, err := evaluate()
	if err != nil {
		return err
	}

	if xlsxPath != "" {
		if err := writeFile(xlsxPath, func(f *os.File) error { return report.WriteXLSX(f, rep) }); err != nil {
			return err
		}
		fmt.Printf("Saved workbook: %s\n", xlsxPath)
	}
	if pdfPath != "" {
		if err := writeFile(pdfPath, func(f *os.File) error { return report.WritePDF(f, rep) }); err != nil {
			return err
		}
		fmt.Printf("Saved PDF: %s\n", pdfPath)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runSave(ctx context.Context, name string) error {
	rep, cfg, err := evaluate()
	if err != nil {
		return err
	}

	if cfg.Store.DatabaseURL != "" {
		if err := store.InitDB(ctx, cfg.Store.DatabaseURL); err != nil {
			fmt.Printf("[WARNING] Database unavailable, using file store: %v\n", err)
		} else if err := store.EnsureSchema(ctx, store.GetPool()); err != nil {
			return err
		}
	}
	defer store.Close()

	saved, err := store.NewReportStore(store.GetPool(), cfg.Store.Dir).Save(ctx, name, rep)
	if err != nil {
		return err
	}
	fmt.Printf("Saved report %s (IRR %s)\n", saved.ID, report.Percent(rep.Summary.IRRPct))
	return nil
}

func runByelawsExtract(ctx context.Context, path, outputDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if path == "" {
		path = cfg.Byelaws.InputPath
	}
	if outputDir == "" {
		outputDir = cfg.Byelaws.OutputDir
	}

	text, err := byelaws.LoadText(path)
	if err != nil {
		return err
	}

	extractor := byelaws.NewExtractor(llm.NewGeminiProvider(cfg.Byelaws.ModelID), cfg.Byelaws.ModelID)
	doc, err := extractor.Extract(ctx, text)
	if err != nil {
		return err
	}
	doc.Source = path

	jsonlPath, htmlPath, err := byelaws.WriteOutputs(outputDir, doc)
	if err != nil {
		return err
	}
	fmt.Printf("Saved JSONL: %s\n", jsonlPath)
	fmt.Printf("Saved HTML visualization: %s\n", htmlPath)
	return nil
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	apiByelaws "realty_feasibility/pkg/api/byelaws"
	apiFeasibility "realty_feasibility/pkg/api/feasibility"
	"realty_feasibility/pkg/core/byelaws"
	"realty_feasibility/pkg/core/config"
	"realty_feasibility/pkg/core/llm"
	"realty_feasibility/pkg/core/store"
)

func main() {
	// Loads .env, config/feasibility.yaml and env overrides
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if cfg.Store.DatabaseURL != "" {
		if err := store.InitDB(ctx, cfg.Store.DatabaseURL); err != nil {
			fmt.Printf("[WARNING] Database unavailable, using file store: %v\n", err)
		} else if err := store.EnsureSchema(ctx, store.GetPool()); err != nil {
			fmt.Printf("[WARNING] %v\n", err)
		}
	}
	defer store.Close()

	reports := store.NewReportStore(store.GetPool(), cfg.Store.Dir)
	fmt.Printf("[STORE] Reports go to %s\n", reports.Backend())

	feasibilityHandler := apiFeasibility.NewHandler(reports, cfg.Options())
	http.HandleFunc("/api/feasibility/report", feasibilityHandler.HandleReport)
	http.HandleFunc("/api/feasibility/defaults", feasibilityHandler.HandleDefaults)

	extractor := byelaws.NewExtractor(llm.NewGeminiProvider(cfg.Byelaws.ModelID), cfg.Byelaws.ModelID)
	byelawsHandler := apiByelaws.NewHandler(extractor)
	http.HandleFunc("/api/byelaws/extract", byelawsHandler.HandleExtract)

	fmt.Printf("API server starting on %s...\n", cfg.Server.Addr)
	fmt.Println("  - POST /api/feasibility/report")
	fmt.Println("  - GET  /api/feasibility/report?id=")
	fmt.Println("  - GET  /api/feasibility/defaults")
	fmt.Println("  - POST /api/byelaws/extract")

	if err := http.ListenAndServe(cfg.Server.Addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	apianalytics "clinic_analytics/pkg/api/analytics"
	"clinic_analytics/pkg/core/llm"
	"clinic_analytics/pkg/core/narrative"
	"clinic_analytics/pkg/core/pipeline"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := pipeline.LoadConfig("config/models.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Config load failed, using defaults: %v\n", err)
	}
	fmt.Printf("[CONFIG] insight=%s descriptions=%s attempts=%d\n",
		cfg.LLM.InsightModel, cfg.LLM.DescriptionModel, cfg.LLM.MaxAttempts)

	provider := &llm.GeminiProvider{Model: cfg.LLM.InsightModel}

	// The description client needs an API key at dial time; without one the
	// analytics endpoints still work, only AI features degrade.
	var descGen narrative.TextGenerator
	if flash, err := llm.NewFlashClient(context.Background(), cfg.LLM.DescriptionModel); err != nil {
		fmt.Printf("[WARNING] Description client unavailable: %v\n", err)
	} else {
		descGen = flash
		defer flash.Close()
	}

	orchestrator := pipeline.NewOrchestrator(cfg, provider, descGen)

	// Preload a dataset when one is configured, so the dashboard has data on
	// first paint.
	if path := os.Getenv("CLINIC_DATA_FILE"); path != "" {
		if err := orchestrator.LoadFile(path); err != nil {
			fmt.Printf("[WARNING] Preload of %s failed: %v\n", path, err)
		} else {
			fmt.Printf("[DATA] Preloaded %s\n", path)
		}
	}

	apianalytics.InitHandler(orchestrator)

	http.HandleFunc("/api/data/load", apianalytics.HandleLoad)
	http.HandleFunc("/api/data/dataset", apianalytics.HandleDataset)
	http.HandleFunc("/api/data/dates", apianalytics.HandleDates)
	http.HandleFunc("/api/analytics/dashboard", apianalytics.HandleDashboard)
	http.HandleFunc("/api/analytics/revenue", apianalytics.HandleRevenue)
	http.HandleFunc("/api/analytics/registry", apianalytics.HandleRegistry)
	http.HandleFunc("/api/analytics/repeats", apianalytics.HandleRepeats)
	http.HandleFunc("/api/patient", apianalytics.HandlePatient)
	http.HandleFunc("/api/ai/insights", apianalytics.HandleInsights)
	http.HandleFunc("/api/ai/descriptions", apianalytics.HandleDescriptions)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/data/load")
	fmt.Println("  - POST /api/data/dataset")
	fmt.Println("  - GET  /api/data/dates")
	fmt.Println("  - GET  /api/analytics/dashboard?start=&end=")
	fmt.Println("  - GET  /api/analytics/revenue?start=&end=")
	fmt.Println("  - GET  /api/analytics/registry?start=&end=")
	fmt.Println("  - GET  /api/analytics/repeats")
	fmt.Println("  - GET  /api/patient?hn=&ai=1")
	fmt.Println("  - GET  /api/ai/insights?start=&end=")
	fmt.Println("  - POST /api/ai/descriptions")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"clinic_analytics/pkg/core/analytics"
	"clinic_analytics/pkg/core/llm"
	"clinic_analytics/pkg/core/narrative"
	"clinic_analytics/pkg/core/pipeline"
	"clinic_analytics/pkg/core/record"
	"clinic_analytics/pkg/core/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	var (
		inPath     = flag.String("in", "", "visit export to analyze (.csv, .html)")
		start      = flag.String("start", "", "range start (YYYY-MM-DD)")
		end        = flag.String("end", "", "range end (YYYY-MM-DD)")
		configPath = flag.String("config", "config/models.yaml", "model config file")
		withAI     = flag.Bool("ai", false, "generate AI cohort insights")
		reportPath = flag.String("report", "", "write an HTML report to this path")
	)
	flag.Parse()

	if *inPath == "" {
		log.Fatal("Error: -in is required.")
	}

	cfg, err := pipeline.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Warning: config load failed, using defaults: %v", err)
	}

	var descGen narrative.TextGenerator
	if *withAI {
		if flash, err := llm.NewFlashClient(context.Background(), cfg.LLM.DescriptionModel); err != nil {
			log.Printf("Warning: description client unavailable: %v", err)
		} else {
			descGen = flash
			defer flash.Close()
		}
	}

	orchestrator := pipeline.NewOrchestrator(cfg,
		&llm.GeminiProvider{Model: cfg.LLM.InsightModel}, descGen)
	if err := orchestrator.LoadFile(*inPath); err != nil {
		log.Fatalf("Critical: failed to load %s: %v", *inPath, err)
	}

	rng := record.DateRange{Start: *start, End: *end}
	dash := orchestrator.Dashboard(rng)
	revenue := orchestrator.Revenue(rng)
	registry := orchestrator.Registry(rng)

	printDashboard(dash, revenue, registry)
	printRepeats(orchestrator.RepeatVisits())

	var insight narrative.Insight
	if *withAI {
		ctx := context.Background()
		orchestrator.RefreshDescriptions(ctx)
		insight = orchestrator.Insights(ctx, rng)
		fmt.Println("\n=== AI Clinical Insights ===")
		fmt.Println(insight.Summary)
		for _, obs := range insight.ClinicalObservations {
			fmt.Printf("  * %s\n", obs)
		}
	}

	if *reportPath != "" {
		if err := writeReport(*reportPath, dash, revenue, insight, *withAI); err != nil {
			log.Fatalf("Critical: report generation failed: %v", err)
		}
		fmt.Printf("\nReport written to %s\n", *reportPath)
	}
}

func printDashboard(dash pipeline.Dashboard, revenue analytics.RevenueStats, registry analytics.RegistryStats) {
	s := dash.Summary
	fmt.Println("=== Clinical Summary ===")
	fmt.Printf("Visits: %d  (YTD %d, %s: %d)\n",
		s.TotalVisits, registry.YearToDate, registry.LatestMonthLabel, registry.LatestMonth)
	fmt.Printf("Pain reduction: avg %.1f%%, median %.1f%%\n",
		s.AvgReductionPercent, s.MedianReductionPercent)
	fmt.Printf("Revenue: %d total, %.2f per visit\n", s.TotalRevenue, revenue.AvgPerVisit)
	fmt.Printf("Top diagnosis: %s\n", s.TopDiagnosis)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Println("\n=== Top Diagnoses ===")
	fmt.Fprintln(w, "CODE\tCOUNT\tSHARE\tDESCRIPTION")
	for _, c := range s.TopDiagnoses {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\t%s\n", c.Code, c.Count, c.SharePercent, c.Description)
	}
	w.Flush()

	fmt.Println("\n=== Monthly Pain Trend ===")
	fmt.Fprintln(w, "MONTH\tVISITS\tAVG IN\tAVG OUT")
	for _, m := range dash.PainTrend {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\n", m.Month, m.VisitCount, m.AvgInitial, m.AvgDischarge)
	}
	w.Flush()
}

func printRepeats(months []analytics.RepeatMonth) {
	if len(months) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Println("\n=== Repeat Visits ===")
	fmt.Fprintln(w, "MONTH\tHN\tNAME\tVISITS\tDIAGNOSES")
	for _, m := range months {
		for _, p := range m.Patients {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				m.Month, p.HN, p.Name, p.Count, strings.Join(p.Diagnoses, "; "))
		}
	}
	w.Flush()
}

// writeReport renders a Markdown report to HTML.
func writeReport(path string, dash pipeline.Dashboard, revenue analytics.RevenueStats, insight narrative.Insight, withAI bool) error {
	var md strings.Builder
	s := dash.Summary

	md.WriteString("# Clinic Visit Analytics Report\n\n")
	fmt.Fprintf(&md, "**Total visits:** %d\n\n", s.TotalVisits)
	fmt.Fprintf(&md, "**Average pain reduction:** %.1f%% (median %.1f%%)\n\n",
		s.AvgReductionPercent, s.MedianReductionPercent)
	fmt.Fprintf(&md, "**Total revenue:** %d\n\n", s.TotalRevenue)

	md.WriteString("## Top Diagnoses\n\n")
	md.WriteString("| Code | Count | Share | Description |\n|---|---|---|---|\n")
	for _, c := range s.TopDiagnoses {
		fmt.Fprintf(&md, "| %s | %d | %.1f%% | %s |\n", c.Code, c.Count, c.SharePercent, c.Description)
	}

	md.WriteString("\n## Revenue by Diagnosis\n\n")
	md.WriteString("| Code | Revenue | Share | Description |\n|---|---|---|---|\n")
	for _, c := range revenue.ByDiagnosis {
		fmt.Fprintf(&md, "| %s | %d | %.1f%% | %s |\n", c.Code, c.Revenue, c.SharePercent, c.Description)
	}

	if withAI {
		md.WriteString("\n## AI Clinical Insights\n\n")
		md.WriteString(insight.Summary + "\n\n")
		for _, obs := range insight.ClinicalObservations {
			fmt.Fprintf(&md, "- %s\n", obs)
		}
		md.WriteString("\n### Recommendations\n\n")
		for _, rec := range insight.Recommendations {
			fmt.Fprintf(&md, "- %s\n", rec)
		}
	}

	html, err := utils.RenderHTML(md.String())
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(html), 0644)
}

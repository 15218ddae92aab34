// Package narrative turns aggregated visit data into clinician-facing prose
// via the Gemini API. Cohort and per-patient calls never fail outward: on
// terminal API errors they return an advisory result the UI can still render.
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"google.golang.org/genai"

	"clinic_analytics/pkg/core/llm"
	"clinic_analytics/pkg/core/record"
	"clinic_analytics/pkg/core/utils"
)

// maxCohortRecords caps how much raw data a cohort prompt carries.
const maxCohortRecords = 50

// Insight is the structured cohort commentary returned by the model.
type Insight struct {
	Summary              string   `json:"summary"`
	ClinicalObservations []string `json:"clinicalObservations"`
	Recommendations      []string `json:"recommendations"`
}

// Service holds the provider and model configuration for narrative calls.
type Service struct {
	Provider    llm.Provider
	Model       string // e.g. "gemini-3-pro-preview"
	MaxAttempts int
}

type cohortRow struct {
	Doctor    string  `json:"doctor"`
	Diagnosis string  `json:"diagnosis"`
	PainStart *int    `json:"painStart"`
	PainEnd   *int    `json:"painEnd"`
	Revenue   float64 `json:"revenue"`
}

var insightSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {Type: genai.TypeString},
		"clinicalObservations": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"recommendations": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"summary", "clinicalObservations", "recommendations"},
}

// CohortInsights asks the model for a clinical summary of the filtered
// record set. Rate limits are retried with backoff; when every attempt fails
// the returned Insight explains the outage instead of surfacing an error.
func (s *Service) CohortInsights(ctx context.Context, records []record.VisitRecord) Insight {
	rows := make([]cohortRow, 0, maxCohortRecords)
	for _, rec := range records {
		if len(rows) == maxCohortRecords {
			break
		}
		rows = append(rows, cohortRow{
			Doctor:    rec.Doctor,
			Diagnosis: rec.ICD10,
			PainStart: rec.InitialPainScore,
			PainEnd:   rec.DischargePainScore,
			Revenue:   rec.Revenue,
		})
	}
	snippet, _ := json.Marshal(rows)

	prompt := fmt.Sprintf(`As a clinical data scientist, analyze this patient outcome dataset and provide a JSON-formatted clinical summary.
Focus on the "Initial Pain Score" vs "Discharge Pain Score" effectiveness.

Data snippet:
%s`, snippet)

	raw, err := llm.CallWithRetry(ctx, s.MaxAttempts, func(ctx context.Context) (string, error) {
		return s.Provider.GenerateJSON(ctx, llm.Request{
			Model:  s.Model,
			Prompt: prompt,
			Schema: insightSchema,
		})
	})
	if err != nil {
		log.Printf("[AI] Cohort insight generation failed: %v", err)
		return degradedInsight(llm.Classify(err) == llm.ErrRateLimited)
	}

	var insight Insight
	if _, err := utils.SmartParse(raw, &insight); err != nil {
		log.Printf("[AI] Cohort insight decode failed: %v", err)
		return degradedInsight(false)
	}
	return insight
}

// degradedInsight is the advisory shown when the model cannot be reached. The
// quota variant tells the operator it is a limits problem, not a data one.
func degradedInsight(quota bool) Insight {
	if quota {
		return Insight{
			Summary: "API Quota Exceeded. The free tier of the Gemini API has strict limits on requests per minute.",
			ClinicalObservations: []string{
				"Your current API key has hit its hourly or minute-based quota.",
			},
			Recommendations: advisoryRecommendations(),
		}
	}
	return Insight{
		Summary: "Could not generate AI insights at this time due to high traffic.",
		ClinicalObservations: []string{
			"An unexpected error occurred during medical data synthesis.",
		},
		Recommendations: advisoryRecommendations(),
	}
}

func advisoryRecommendations() []string {
	return []string{
		"Wait 60 seconds and try requesting insights again.",
		"Consider using a paid API key for higher volume data analysis.",
		"Check your Google AI Studio dashboard for quota details.",
	}
}

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

// Trend values the model may return for a patient trajectory.
const (
	TrendImproving     = "improving"
	TrendStable        = "stable"
	TrendDeclining     = "declining"
	TrendNotEnoughData = "not enough data"
)

// Narrative is the structured per-patient commentary.
type Narrative struct {
	Summary       string   `json:"summary"`
	Trend         string   `json:"trend"`
	KeyIndicators []string `json:"keyIndicators"`
}

type visitRow struct {
	Date      string   `json:"date"`
	Diagnosis string   `json:"diagnosis"`
	Pain      painPair `json:"pain"`
}

type painPair struct {
	In  *int `json:"in"`
	Out *int `json:"out"`
}

var narrativeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {
			Type:        genai.TypeString,
			Description: "A professional 1-paragraph summary of progress.",
		},
		"trend": {
			Type:        genai.TypeString,
			Enum:        []string{TrendImproving, TrendStable, TrendDeclining, TrendNotEnoughData},
			Description: "The general clinical trajectory.",
		},
		"keyIndicators": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "3-4 short key clinical health indicators or milestones.",
		},
	},
	Required: []string{"summary", "trend", "keyIndicators"},
}

// PatientNarrative asks the model to narrate one patient's history. Like
// CohortInsights it degrades to an advisory result on terminal failure.
func (s *Service) PatientNarrative(ctx context.Context, name string, visits []record.VisitRecord) Narrative {
	rows := make([]visitRow, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, visitRow{
			Date:      v.VisitDate,
			Diagnosis: v.ICD10,
			Pain:      painPair{In: v.InitialPainScore, Out: v.DischargePainScore},
		})
	}
	history, _ := json.Marshal(rows)

	prompt := fmt.Sprintf(`Analyze the medical history of patient %q.
Provide a professional clinical narrative as a JSON object.

Data:
%s`, name, history)

	raw, err := llm.CallWithRetry(ctx, s.MaxAttempts, func(ctx context.Context) (string, error) {
		return s.Provider.GenerateJSON(ctx, llm.Request{
			Model:  s.Model,
			Prompt: prompt,
			Schema: narrativeSchema,
		})
	})
	if err != nil {
		log.Printf("[AI] Patient narrative failed for %s: %v", name, err)
		return degradedNarrative(llm.Classify(err) == llm.ErrRateLimited)
	}

	var n Narrative
	if _, err := utils.SmartParse(raw, &n); err != nil {
		log.Printf("[AI] Patient narrative decode failed for %s: %v", name, err)
		return degradedNarrative(false)
	}
	if n.Trend == "" {
		n.Trend = TrendNotEnoughData
	}
	return n
}

func degradedNarrative(quota bool) Narrative {
	summary := "Clinical summary currently unavailable due to traffic limits."
	if quota {
		summary = "Clinical summary unavailable: API Quota exceeded for this minute."
	}
	return Narrative{
		Summary:       summary,
		Trend:         TrendNotEnoughData,
		KeyIndicators: []string{"Review manual records", "Retry in 60 seconds"},
	}
}

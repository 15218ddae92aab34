package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"clinic_analytics/pkg/core/llm"
	"clinic_analytics/pkg/core/record"
)

// fakeProvider returns canned responses or errors and records the prompts it
// received.
type fakeProvider struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeProvider) GenerateJSON(ctx context.Context, req llm.Request) (string, error) {
	f.prompts = append(f.prompts, req.Prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func ip(n int) *int { return &n }

func service(p llm.Provider) *Service {
	return &Service{Provider: p, Model: "test-model", MaxAttempts: 1}
}

func TestCohortInsightsSuccess(t *testing.T) {
	fake := &fakeProvider{
		response: `{"summary":"Good outcomes.","clinicalObservations":["Pain drops fast"],"recommendations":["Keep protocol"]}`,
	}

	insight := service(fake).CohortInsights(context.Background(), []record.VisitRecord{
		{HN: "H1", Doctor: "Dr. A", ICD10: "M54.5", InitialPainScore: ip(8), DischargePainScore: ip(2), Revenue: 100},
	})
	if insight.Summary != "Good outcomes." {
		t.Errorf("Got %+v", insight)
	}
	if len(fake.prompts) != 1 || !strings.Contains(fake.prompts[0], "M54.5") {
		t.Errorf("Prompt should carry the data snippet: %v", fake.prompts)
	}
}

func TestCohortInsightsCapsPromptData(t *testing.T) {
	fake := &fakeProvider{response: `{"summary":"s","clinicalObservations":[],"recommendations":[]}`}

	recs := make([]record.VisitRecord, 80)
	for i := range recs {
		recs[i] = record.VisitRecord{HN: "H1", Doctor: "Dr. A"}
	}
	service(fake).CohortInsights(context.Background(), recs)

	// 50 rows, each with one "doctor" key
	if n := strings.Count(fake.prompts[0], `"doctor"`); n != maxCohortRecords {
		t.Errorf("Expected %d rows in prompt, got %d", maxCohortRecords, n)
	}
}

func TestCohortInsightsQuotaDegradation(t *testing.T) {
	fake := &fakeProvider{err: errors.New("429 RESOURCE_EXHAUSTED: quota")}

	insight := service(fake).CohortInsights(context.Background(), nil)
	if !strings.Contains(insight.Summary, "Quota") {
		t.Errorf("Expected quota advisory, got %q", insight.Summary)
	}
	if len(insight.Recommendations) == 0 {
		t.Error("Degraded result must still carry recommendations")
	}
}

func TestCohortInsightsGenericDegradation(t *testing.T) {
	fake := &fakeProvider{err: errors.New("connection reset")}

	insight := service(fake).CohortInsights(context.Background(), nil)
	if !strings.Contains(insight.Summary, "high traffic") {
		t.Errorf("Expected generic advisory, got %q", insight.Summary)
	}
}

func TestCohortInsightsRepairsSloppyJSON(t *testing.T) {
	// Markdown fences and trailing commas come back from models regularly
	fake := &fakeProvider{
		response: "```json\n{\"summary\":\"ok\",\"clinicalObservations\":[\"a\",],\"recommendations\":[]}\n```",
	}
	insight := service(fake).CohortInsights(context.Background(), nil)
	if insight.Summary != "ok" {
		t.Errorf("Expected repaired decode, got %+v", insight)
	}
}

func TestPatientNarrativeSuccess(t *testing.T) {
	fake := &fakeProvider{
		response: `{"summary":"Recovering well.","trend":"improving","keyIndicators":["Pain 8 to 2"]}`,
	}

	n := service(fake).PatientNarrative(context.Background(), "Somchai", []record.VisitRecord{
		{HN: "H1", VisitDate: "2025-06-01", ICD10: "M54.5", InitialPainScore: ip(8), DischargePainScore: ip(2)},
	})
	if n.Trend != TrendImproving || n.Summary != "Recovering well." {
		t.Errorf("Got %+v", n)
	}
	if !strings.Contains(fake.prompts[0], "Somchai") {
		t.Error("Prompt should name the patient")
	}
}

func TestPatientNarrativeDegradation(t *testing.T) {
	fake := &fakeProvider{err: errors.New("quota exceeded")}

	n := service(fake).PatientNarrative(context.Background(), "Somchai", nil)
	if n.Trend != TrendNotEnoughData {
		t.Errorf("Expected %q trend, got %q", TrendNotEnoughData, n.Trend)
	}
	if !strings.Contains(n.Summary, "Quota") {
		t.Errorf("Expected quota advisory, got %q", n.Summary)
	}
}

type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func TestFetchDescriptions(t *testing.T) {
	gen := &fakeGenerator{response: `{"M54.5":"Low back pain","A09":"Diarrhoea"}`}

	descs := FetchDescriptions(context.Background(), gen, []string{"M54.5", "A09"}, 1)
	if len(descs) != 2 || descs["M54.5"] != "Low back pain" {
		t.Errorf("Got %v", descs)
	}
}

func TestFetchDescriptionsSwallowsErrors(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	if descs := FetchDescriptions(context.Background(), gen, []string{"A09"}, 1); len(descs) != 0 {
		t.Errorf("Expected empty map on failure, got %v", descs)
	}
	// No codes, no call
	if descs := FetchDescriptions(context.Background(), gen, nil, 1); len(descs) != 0 {
		t.Errorf("Expected empty map for empty codes, got %v", descs)
	}
}

package record

import "testing"

func TestNormalizeBasic(t *testing.T) {
	rows := []RawRow{
		{
			KeyVisitDate:   "2025-06-01",
			KeyHN:          "HN001",
			KeyPatientName: "Somchai",
			KeyDoctor:      "Dr. A",
			KeyICD10:       "M54.5: Low back pain",
			KeyICD9:        "93.39: Physical therapy",
			KeyInitialPain: "SCORE : 8 (2025-06-01 ,09:00:00)",
			KeyDischarge:   "2",
			KeyRevenues:    "1,500.50",
		},
	}

	recs := Normalize(rows)
	if len(recs) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.HN != "HN001" || r.VisitDate != "2025-06-01" {
		t.Errorf("Identity fields wrong: %+v", r)
	}
	if r.InitialPainScore == nil || *r.InitialPainScore != 8 {
		t.Errorf("Expected initial score 8, got %v", r.InitialPainScore)
	}
	if r.DischargePainScore == nil || *r.DischargePainScore != 2 {
		t.Errorf("Expected discharge score 2, got %v", r.DischargePainScore)
	}
	// "1,500.50" with comma stripped
	if r.Revenue != 1500.50 {
		t.Errorf("Expected revenue 1500.50, got %f", r.Revenue)
	}
}

func TestNormalizeDropsMissingHN(t *testing.T) {
	rows := []RawRow{
		{KeyHN: "HN001", KeyVisitDate: "2025-06-01"},
		{KeyVisitDate: "2025-06-02"}, // no HN at all
		{KeyHN: "", KeyVisitDate: "2025-06-03"},
		{KeyHN: "HN002", KeyVisitDate: "2025-06-04"},
	}
	recs := Normalize(rows)
	if len(recs) != 2 {
		t.Fatalf("Expected 2 records after dropping HN-less rows, got %d", len(recs))
	}
	// Order preserved
	if recs[0].HN != "HN001" || recs[1].HN != "HN002" {
		t.Errorf("Order not preserved: %v, %v", recs[0].HN, recs[1].HN)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	recs := Normalize([]RawRow{{KeyHN: "HN001", KeyRevenues: "not a number"}})
	if len(recs) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.Revenue != 0 {
		t.Errorf("Unparseable revenue should default to 0, got %f", r.Revenue)
	}
	if r.InitialPainScore != nil || r.DischargePainScore != nil {
		t.Error("Absent scores should be nil")
	}
	if r.Month() != "" {
		t.Errorf("Month of empty date should be empty, got %q", r.Month())
	}
}

func TestSplitCode(t *testing.T) {
	code, desc := SplitCode("M54.5: Low back pain")
	if code != "M54.5" || desc != "Low back pain" {
		t.Errorf("Got %q / %q", code, desc)
	}
	// Only the first colon splits; descriptions may contain more
	code, desc = SplitCode("Z00.0: Exam: general")
	if code != "Z00.0" || desc != "Exam: general" {
		t.Errorf("Got %q / %q", code, desc)
	}
	// No colon means the whole value is the code
	code, desc = SplitCode("M54.5")
	if code != "M54.5" || desc != "" {
		t.Errorf("Got %q / %q", code, desc)
	}
	code, _ = SplitCode("")
	if code != "" {
		t.Errorf("Empty composite should yield empty code, got %q", code)
	}
}

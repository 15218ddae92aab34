package record

import "testing"

func visitsOn(dates ...string) []VisitRecord {
	recs := make([]VisitRecord, len(dates))
	for i, d := range dates {
		recs[i] = VisitRecord{HN: "HN001", VisitDate: d}
	}
	return recs
}

func TestFilterByDateInclusive(t *testing.T) {
	recs := visitsOn("2025-05-31", "2025-06-01", "2025-06-15", "2025-06-30", "2025-07-01")

	got := FilterByDate(recs, DateRange{Start: "2025-06-01", End: "2025-06-30"})
	if len(got) != 3 {
		t.Fatalf("Expected 3 records in June, got %d", len(got))
	}
	// Both bounds are inclusive
	if got[0].VisitDate != "2025-06-01" || got[2].VisitDate != "2025-06-30" {
		t.Errorf("Bounds not inclusive: %v", got)
	}
}

func TestFilterByDateOpenEnds(t *testing.T) {
	recs := visitsOn("2025-05-01", "2025-06-01", "2025-07-01")

	if got := FilterByDate(recs, DateRange{Start: "2025-06-01"}); len(got) != 2 {
		t.Errorf("Open end: expected 2, got %d", len(got))
	}
	if got := FilterByDate(recs, DateRange{End: "2025-06-01"}); len(got) != 2 {
		t.Errorf("Open start: expected 2, got %d", len(got))
	}
	// Zero range passes everything through untouched
	if got := FilterByDate(recs, DateRange{}); len(got) != 3 {
		t.Errorf("Zero range: expected 3, got %d", len(got))
	}
}

func TestAvailableDates(t *testing.T) {
	recs := visitsOn("2025-06-15", "2025-06-01", "2025-06-15", "")
	dates := AvailableDates(recs)
	// Distinct, sorted, empty dropped
	if len(dates) != 2 || dates[0] != "2025-06-01" || dates[1] != "2025-06-15" {
		t.Errorf("Got %v", dates)
	}
}

func TestFullRange(t *testing.T) {
	recs := visitsOn("2025-06-15", "2025-06-01", "2025-07-20")
	r := FullRange(recs)
	if r.Start != "2025-06-01" || r.End != "2025-07-20" {
		t.Errorf("Got %+v", r)
	}
	if !FullRange(nil).IsZero() {
		t.Error("Empty input should yield zero range")
	}
}

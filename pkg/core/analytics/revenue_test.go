package analytics

import (
	"testing"

	"clinic_analytics/pkg/core/record"
)

func doctorVisit(date, doctor, icd10 string, revenue float64) record.VisitRecord {
	r := visit(date, "H1", icd10, nil, nil, revenue)
	r.Doctor = doctor
	return r
}

func TestComputeRevenueStats(t *testing.T) {
	recs := []record.VisitRecord{
		doctorVisit("2025-06-01", "Dr. A", "M54.5: Low back pain", 3000),
		doctorVisit("2025-06-15", "Dr. B", "M25.5: Joint pain", 1000),
		doctorVisit("2025-07-01", "Dr. A", "M54.5: Low back pain", 2000),
		doctorVisit("2025-07-02", "Dr. C", "", 4000),
	}

	stats := ComputeRevenueStats(recs, nil)
	if stats.Total != 10000 {
		t.Errorf("Expected total 10000, got %f", stats.Total)
	}
	// 10000 over 4 visits
	if stats.AvgPerVisit != 2500 {
		t.Errorf("Expected avg 2500, got %f", stats.AvgPerVisit)
	}

	if len(stats.Monthly) != 2 || stats.Monthly[0].Month != "2025-06" || stats.Monthly[0].Revenue != 4000 {
		t.Errorf("Monthly wrong: %+v", stats.Monthly)
	}
	if stats.Monthly[1].Revenue != 6000 {
		t.Errorf("Expected 6000 for 2025-07, got %d", stats.Monthly[1].Revenue)
	}

	// Dr. A 5000, Dr. C 4000, Dr. B 1000
	if len(stats.TopDoctors) != 3 || stats.TopDoctors[0].Doctor != "Dr. A" || stats.TopDoctors[0].Revenue != 5000 {
		t.Errorf("Doctors wrong: %+v", stats.TopDoctors)
	}

	// M54.5 5000 (50%), Other 4000 (40%), M25.5 1000 (10%)
	if len(stats.ByDiagnosis) != 3 {
		t.Fatalf("Expected 3 revenue clusters, got %d", len(stats.ByDiagnosis))
	}
	top := stats.ByDiagnosis[0]
	if top.Code != "M54.5" || top.Revenue != 5000 || top.SharePercent != 50.0 {
		t.Errorf("Top cluster wrong: %+v", top)
	}
	// Empty codes label as Other in the financial view
	if stats.ByDiagnosis[1].Code != OtherDiagnosisCode {
		t.Errorf("Expected Other cluster second, got %+v", stats.ByDiagnosis[1])
	}

	shareSum := 0.0
	for _, c := range stats.ByDiagnosis {
		shareSum += c.SharePercent
	}
	if shareSum != 100.0 {
		t.Errorf("Shares should sum to 100, got %f", shareSum)
	}
}

func TestComputeRevenueStatsTopFiveCap(t *testing.T) {
	recs := make([]record.VisitRecord, 0, 7)
	for _, d := range []string{"D1", "D2", "D3", "D4", "D5", "D6", "D7"} {
		recs = append(recs, doctorVisit("2025-06-01", d, "A", 100))
	}
	stats := ComputeRevenueStats(recs, nil)
	if len(stats.TopDoctors) != 5 {
		t.Errorf("Expected top 5 doctors, got %d", len(stats.TopDoctors))
	}
	// Equal revenue ties break on name
	if stats.TopDoctors[0].Doctor != "D1" {
		t.Errorf("Expected D1 first on name tie-break, got %s", stats.TopDoctors[0].Doctor)
	}
}

func TestComputeRevenueStatsEmpty(t *testing.T) {
	stats := ComputeRevenueStats(nil, nil)
	if stats.Total != 0 || stats.AvgPerVisit != 0 {
		t.Errorf("Empty input should zero totals: %+v", stats)
	}
	if stats.Monthly == nil || stats.ByDiagnosis == nil {
		t.Error("Slices should be non-nil for JSON encoding")
	}
}

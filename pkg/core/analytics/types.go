package analytics

import "clinic_analytics/pkg/core/record"

// Fallback descriptions when neither the external lookup nor the source data
// carries one for a code.
const (
	FallbackDiagnosisDescription = "Clinical Diagnosis"
	FallbackProcedureDescription = "Medical Procedure"
)

// Codes assigned to records whose composite ICD value is empty. The clinical
// frequency view and the revenue view historically used different labels;
// both are kept.
const (
	UnknownDiagnosisCode = "Unknown"
	OtherDiagnosisCode   = "Other"
)

// Cluster is one diagnosis or procedure code group in the frequency view.
// SharePercent is count over total filtered records, in percent.
type Cluster struct {
	Code         string  `json:"code"`
	Count        int     `json:"count"`
	Description  string  `json:"description"`
	SharePercent float64 `json:"share"`
}

// Summary holds the headline dashboard metrics for a filtered record set.
type Summary struct {
	TotalVisits            int     `json:"totalVisits"`
	AvgReductionPercent    float64 `json:"avgReductionPercent"`
	MedianReductionPercent float64 `json:"medianReductionPercent"`
	TotalRevenue           int     `json:"totalRevenue"` // rounded for display
	TopDiagnosis           string  `json:"topDiagnosis"` // code, "N/A" when empty

	TopDiagnoses  []Cluster `json:"topDiagnoses"`  // ICD-10, top 10 by count
	TopProcedures []Cluster `json:"topProcedures"` // ICD-9, top 10 by count

	// Full group counts, for "N clusters analyzed" reporting. The top lists
	// above are truncated; these are not.
	DiagnosisClusterCount int `json:"diagnosisClusterCount"`
	ProcedureClusterCount int `json:"procedureClusterCount"`
}

// MonthlyPain is one month bucket of the pain-efficacy trend. Averages are
// computed over the non-nil scores only; InitialCount and DischargeCount are
// the sample sizes behind each average, VisitCount the raw bucket size.
type MonthlyPain struct {
	Month          string  `json:"month"` // YYYY-MM
	AvgInitial     float64 `json:"initial"`
	AvgDischarge   float64 `json:"discharge"`
	InitialCount   int     `json:"initialCount"`
	DischargeCount int     `json:"dischargeCount"`
	VisitCount     int     `json:"count"`
}

// MonthlyCount is one month of visit volume.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthlyRevenue is one month of summed revenue, rounded for display.
type MonthlyRevenue struct {
	Month   string `json:"month"`
	Revenue int    `json:"revenue"`
}

// DoctorRevenue is one provider's revenue contribution, rounded.
type DoctorRevenue struct {
	Doctor  string `json:"name"`
	Revenue int    `json:"revenue"`
}

// RevenueCluster is one ICD-10 group in the financial view. SharePercent is
// group revenue over total revenue — a different denominator than the
// frequency share in Cluster.
type RevenueCluster struct {
	Code         string  `json:"code"`
	Description  string  `json:"description"`
	Revenue      int     `json:"revenue"`
	Count        int     `json:"count"`
	SharePercent float64 `json:"share"`
}

// RevenueStats is the financial view over a filtered record set.
type RevenueStats struct {
	Monthly     []MonthlyRevenue `json:"monthly"`
	TopDoctors  []DoctorRevenue  `json:"topDoctors"` // top 5, descending
	ByDiagnosis []RevenueCluster `json:"byDiagnosis"`
	Total       float64          `json:"totalRevenue"`
	AvgPerVisit float64          `json:"avgRevenue"`
}

// Profile is one patient's full visit history with derived metrics.
type Profile struct {
	HN     string               `json:"hn"`
	Name   string               `json:"name"`
	Visits []record.VisitRecord `json:"visits"` // ascending by date

	TotalRevenue float64 `json:"totalRevenue"`
	// Mean of per-visit (initial-discharge)/initial over visits where both
	// scores are present and initial > 0, in percent.
	AvgImprovementPercent float64 `json:"avgImprovement"`
}

// RepeatPatient is one patient with more than one visit in a month.
type RepeatPatient struct {
	HN        string   `json:"hn"`
	Name      string   `json:"name"`
	Count     int      `json:"count"`
	Diagnoses []string `json:"icds"` // distinct ICD-10 composites, encounter order
}

// RepeatMonth groups repeat patients for one month.
type RepeatMonth struct {
	Month    string          `json:"month"`
	Patients []RepeatPatient `json:"patients"`
}

// RegistryStats are the registry-view counters relative to the most recent
// visit date in the set.
type RegistryStats struct {
	TotalInFilter    int    `json:"totalInFilter"`
	YearToDate       int    `json:"ytd"`
	LatestMonth      int    `json:"latestMonth"`
	LatestMonthLabel string `json:"latestMonthName"` // e.g. "June 2025", "N/A"
}

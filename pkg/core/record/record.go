package record

import (
	"strconv"
	"strings"
)

// VisitRecord is the canonical unit of the analytics pipeline: one clinical
// encounter extracted from a spreadsheet row. Records are created once per
// ingest event and never mutated afterwards.
type VisitRecord struct {
	VisitDate   string `json:"visitDate"` // zero-padded ISO "YYYY-MM-DD", lexically ordered
	VisitTime   string `json:"visitTime"`
	HN          string `json:"hn"` // patient identifier, required
	EN          string `json:"en"` // encounter identifier
	PatientName string `json:"patientName"`
	Doctor      string `json:"doctor"`
	ICD10       string `json:"icd10"` // composite "CODE: description"
	ICD9        string `json:"icd9"`  // composite "CODE: description"

	// Pain scores are nil when the source cell carried no usable value.
	// Zero is a meaningful score ("no pain"), distinct from nil.
	InitialPainScore   *int `json:"initialPainScore"`
	DischargePainScore *int `json:"dischargePainScore"`

	Revenue float64 `json:"revenue"`
}

// Month returns the YYYY-MM bucket key for the visit, or "" when the date is
// shorter than a full month prefix.
func (v VisitRecord) Month() string {
	if len(v.VisitDate) < 7 {
		return ""
	}
	return v.VisitDate[:7]
}

// RawRow is one loosely typed spreadsheet row: column name to whatever the
// upstream reader produced (string, float64 from JSON numbers, or nil).
type RawRow map[string]any

// Recognized column names. The two pain-score columns carry the Thai labels
// used by the source system (แรกรับ = on admission, ก่อนจำหน่าย = before
// discharge); matching is exact and case-sensitive.
const (
	KeyVisitDate   = "VISIT_DATE"
	KeyVisitTime   = "VISIT_TIME"
	KeyHN          = "HN"
	KeyEN          = "EN"
	KeyPatientName = "PATIENT_NAME"
	KeyDoctor      = "DOCTOR"
	KeyICD10       = "ICD10"
	KeyICD9        = "ICD9"
	KeyInitialPain = "PAIN_SCORE_(แรกรับ)"
	KeyDischarge   = "PAIN_SCORE_(ก่อนจำหน่าย)"
	KeyRevenues    = "REVENUES"
)

// SplitCode splits a composite "CODE: description" value at the first colon.
// Both halves are trimmed. Without a colon the whole trimmed value is the
// code and the description is empty.
func SplitCode(composite string) (code, description string) {
	before, after, found := strings.Cut(composite, ":")
	if !found {
		return strings.TrimSpace(composite), ""
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// stringValue coerces an arbitrary cell value to a string, empty on nil.
func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// floatValue coerces an arbitrary cell value to a float64, 0 on failure.
// String values tolerate thousands separators and trailing junk the way
// spreadsheet exports produce them ("1,234.50 THB" -> 1234.50).
func floatValue(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		// Leading numeric prefix fallback for values like "950.00 (net)".
		if m := leadingNumberRe.FindString(s); m != "" {
			f, err := strconv.ParseFloat(m, 64)
			if err == nil {
				return f
			}
		}
		return 0
	default:
		return 0
	}
}

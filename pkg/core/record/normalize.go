package record

// Normalize maps raw spreadsheet rows into canonical visit records.
//
// Every field is coerced defensively: strings default to "", revenue defaults
// to 0, pain scores go through the marker-aware parser. The only reason a row
// is dropped is an empty HN after coercion — a record without a patient
// identifier cannot participate in any aggregation. Output order matches
// input order for all retained rows.
func Normalize(rows []RawRow) []VisitRecord {
	return NormalizeWith(rows, defaultMarkers)
}

// NormalizeWith is Normalize with an explicit pain-score marker set.
func NormalizeWith(rows []RawRow, markers ScoreMarkers) []VisitRecord {
	out := make([]VisitRecord, 0, len(rows))
	for _, row := range rows {
		rec := VisitRecord{
			VisitDate:          stringValue(row[KeyVisitDate]),
			VisitTime:          stringValue(row[KeyVisitTime]),
			HN:                 stringValue(row[KeyHN]),
			EN:                 stringValue(row[KeyEN]),
			PatientName:        stringValue(row[KeyPatientName]),
			Doctor:             stringValue(row[KeyDoctor]),
			ICD10:              stringValue(row[KeyICD10]),
			ICD9:               stringValue(row[KeyICD9]),
			InitialPainScore:   markers.Parse(row[KeyInitialPain]),
			DischargePainScore: markers.Parse(row[KeyDischarge]),
			Revenue:            floatValue(row[KeyRevenues]),
		}
		if rec.HN == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

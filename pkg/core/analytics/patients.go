package analytics

import (
	"sort"

	"clinic_analytics/pkg/core/record"
)

// PatientProfile assembles one patient's history from the full (unfiltered)
// record set: the profile view deliberately ignores the active date range so
// a patient's trajectory is always complete. Returns false when the HN has no
// visits.
func PatientProfile(records []record.VisitRecord, hn string) (Profile, bool) {
	visits := make([]record.VisitRecord, 0)
	for _, rec := range records {
		if rec.HN == hn {
			visits = append(visits, rec)
		}
	}
	if len(visits) == 0 {
		return Profile{}, false
	}
	sort.SliceStable(visits, func(i, j int) bool {
		return visits[i].VisitDate < visits[j].VisitDate
	})

	p := Profile{HN: hn, Name: visits[0].PatientName, Visits: visits}
	if p.Name == "" {
		p.Name = "Unknown Patient"
	}

	// Improvement averages per-visit relative reduction, counting only
	// visits where both scores exist and the initial score is positive.
	validCount := 0
	improvementSum := 0.0
	for _, v := range visits {
		p.TotalRevenue += v.Revenue
		if v.InitialPainScore == nil || v.DischargePainScore == nil || *v.InitialPainScore <= 0 {
			continue
		}
		improvementSum += float64(*v.InitialPainScore-*v.DischargePainScore) / float64(*v.InitialPainScore)
		validCount++
	}
	if validCount > 0 {
		p.AvgImprovementPercent = round1(improvementSum / float64(validCount) * 100)
	}
	return p, true
}

// RepeatVisits finds patients with more than one encounter inside a single
// calendar month. Months come back descending (most recent first); patients
// within a month descending by visit count with HN as tie-break. Each entry
// carries the distinct ICD-10 composites seen for that patient that month, in
// encounter order.
func RepeatVisits(records []record.VisitRecord) []RepeatMonth {
	type patientAgg struct {
		hn        string
		name      string
		count     int
		diagnoses []string
		seen      map[string]bool
	}

	byMonth := make(map[string]map[string]*patientAgg)
	months := make([]string, 0)
	monthOrder := make(map[string][]string) // HN encounter order per month

	for _, rec := range records {
		month := rec.Month()
		patients, ok := byMonth[month]
		if !ok {
			patients = make(map[string]*patientAgg)
			byMonth[month] = patients
			months = append(months, month)
		}
		agg, ok := patients[rec.HN]
		if !ok {
			agg = &patientAgg{hn: rec.HN, name: rec.PatientName, seen: make(map[string]bool)}
			patients[rec.HN] = agg
			monthOrder[month] = append(monthOrder[month], rec.HN)
		}
		agg.count++
		if rec.ICD10 != "" && !agg.seen[rec.ICD10] {
			agg.seen[rec.ICD10] = true
			agg.diagnoses = append(agg.diagnoses, rec.ICD10)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	out := make([]RepeatMonth, 0)
	for _, month := range months {
		repeats := make([]RepeatPatient, 0)
		for _, hn := range monthOrder[month] {
			agg := byMonth[month][hn]
			if agg.count <= 1 {
				continue
			}
			diagnoses := agg.diagnoses
			if diagnoses == nil {
				diagnoses = []string{}
			}
			repeats = append(repeats, RepeatPatient{
				HN:        agg.hn,
				Name:      agg.name,
				Count:     agg.count,
				Diagnoses: diagnoses,
			})
		}
		if len(repeats) == 0 {
			continue
		}
		sort.SliceStable(repeats, func(i, j int) bool {
			if repeats[i].Count != repeats[j].Count {
				return repeats[i].Count > repeats[j].Count
			}
			return repeats[i].HN < repeats[j].HN
		})
		out = append(out, RepeatMonth{Month: month, Patients: repeats})
	}
	return out
}

package analytics

import (
	"sort"

	"clinic_analytics/pkg/core/record"
)

// MonthlyPainTrend buckets records by month (the YYYY-MM prefix of the visit
// date) and computes per-bucket average initial and discharge scores over the
// non-nil values only. Buckets come back ascending by month string.
func MonthlyPainTrend(records []record.VisitRecord) []MonthlyPain {
	type bucket struct {
		initials   []float64
		discharges []float64
		count      int
	}
	buckets := make(map[string]*bucket)
	months := make([]string, 0)
	for _, rec := range records {
		month := rec.Month()
		b, ok := buckets[month]
		if !ok {
			b = &bucket{}
			buckets[month] = b
			months = append(months, month)
		}
		if rec.InitialPainScore != nil {
			b.initials = append(b.initials, float64(*rec.InitialPainScore))
		}
		if rec.DischargePainScore != nil {
			b.discharges = append(b.discharges, float64(*rec.DischargePainScore))
		}
		b.count++
	}
	sort.Strings(months)

	out := make([]MonthlyPain, 0, len(months))
	for _, month := range months {
		b := buckets[month]
		out = append(out, MonthlyPain{
			Month:          month,
			AvgInitial:     Mean(b.initials),
			AvgDischarge:   Mean(b.discharges),
			InitialCount:   len(b.initials),
			DischargeCount: len(b.discharges),
			VisitCount:     b.count,
		})
	}
	return out
}

// MonthlyVolume counts visits per month, ascending by month.
func MonthlyVolume(records []record.VisitRecord) []MonthlyCount {
	counts := make(map[string]int)
	months := make([]string, 0)
	for _, rec := range records {
		month := rec.Month()
		if _, ok := counts[month]; !ok {
			months = append(months, month)
		}
		counts[month]++
	}
	sort.Strings(months)

	out := make([]MonthlyCount, 0, len(months))
	for _, month := range months {
		out = append(out, MonthlyCount{Month: month, Count: counts[month]})
	}
	return out
}

package analytics

import (
	"time"

	"clinic_analytics/pkg/core/record"
)

// ComputeRegistryStats derives the registry counters. Year-to-date and
// latest-month counts are anchored on the most recent parseable visit date in
// the full set, while TotalInFilter counts the filtered view the caller is
// looking at.
func ComputeRegistryStats(all, filtered []record.VisitRecord) RegistryStats {
	stats := RegistryStats{
		TotalInFilter:    len(filtered),
		LatestMonthLabel: "N/A",
	}

	var latest time.Time
	found := false
	for _, rec := range all {
		t, err := time.Parse("2006-01-02", rec.VisitDate)
		if err != nil {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}
	if !found {
		return stats
	}

	year := latest.Format("2006")
	month := latest.Format("2006-01")
	for _, rec := range all {
		if len(rec.VisitDate) >= 4 && rec.VisitDate[:4] == year {
			stats.YearToDate++
		}
		if rec.Month() == month {
			stats.LatestMonth++
		}
	}
	stats.LatestMonthLabel = latest.Format("January 2006")
	return stats
}

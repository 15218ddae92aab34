package analytics

import (
	"math"
	"sort"

	"clinic_analytics/pkg/core/record"
)

// ComputeRevenueStats builds the financial view: monthly revenue, the top
// five providers by contribution, and revenue attributed to ICD-10 clusters.
//
// Cluster shares here divide by total revenue, not by record count — the
// frequency view in Summarize uses the count denominator. The two must not
// be conflated.
func ComputeRevenueStats(records []record.VisitRecord, lookup map[string]string) RevenueStats {
	stats := RevenueStats{
		Monthly:     []MonthlyRevenue{},
		TopDoctors:  []DoctorRevenue{},
		ByDiagnosis: []RevenueCluster{},
	}

	monthly := make(map[string]float64)
	months := make([]string, 0)
	doctors := make(map[string]float64)
	doctorNames := make([]string, 0)

	for _, rec := range records {
		month := rec.Month()
		if _, ok := monthly[month]; !ok {
			months = append(months, month)
		}
		monthly[month] += rec.Revenue

		if _, ok := doctors[rec.Doctor]; !ok {
			doctorNames = append(doctorNames, rec.Doctor)
		}
		doctors[rec.Doctor] += rec.Revenue

		stats.Total += rec.Revenue
	}

	sort.Strings(months)
	for _, month := range months {
		stats.Monthly = append(stats.Monthly, MonthlyRevenue{
			Month:   month,
			Revenue: int(math.Round(monthly[month])),
		})
	}

	// Descending revenue, name as tie-break, top five only.
	sort.SliceStable(doctorNames, func(i, j int) bool {
		ri, rj := doctors[doctorNames[i]], doctors[doctorNames[j]]
		if ri != rj {
			return ri > rj
		}
		return doctorNames[i] < doctorNames[j]
	})
	for _, name := range doctorNames[:min(5, len(doctorNames))] {
		stats.TopDoctors = append(stats.TopDoctors, DoctorRevenue{
			Doctor:  name,
			Revenue: int(math.Round(doctors[name])),
		})
	}

	groups := groupByCode(records, func(r record.VisitRecord) string { return r.ICD10 }, OtherDiagnosisCode)
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].revenue != groups[j].revenue {
			return groups[i].revenue > groups[j].revenue
		}
		return groups[i].code < groups[j].code
	})
	for _, g := range groups {
		share := 0.0
		if stats.Total > 0 {
			share = round1(g.revenue / stats.Total * 100)
		}
		stats.ByDiagnosis = append(stats.ByDiagnosis, RevenueCluster{
			Code:         g.code,
			Description:  describe(g.code, g.nameFromData, lookup, FallbackDiagnosisDescription),
			Revenue:      int(math.Round(g.revenue)),
			Count:        g.count,
			SharePercent: share,
		})
	}

	if len(records) > 0 {
		stats.AvgPerVisit = stats.Total / float64(len(records))
	}
	return stats
}

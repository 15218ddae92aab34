package analytics

import (
	"math"
	"sort"

	"clinic_analytics/pkg/core/record"
)

// codeGroup accumulates one diagnosis/procedure code while grouping.
type codeGroup struct {
	code         string
	count        int
	revenue      float64
	nameFromData string // first non-empty description seen in the source data
}

// groupByCode groups records by the code half of the composite value picked
// by extract. Records with an empty code fall into emptyCode. The returned
// slice preserves first-encounter order; callers sort it themselves.
func groupByCode(records []record.VisitRecord, extract func(record.VisitRecord) string, emptyCode string) []*codeGroup {
	index := make(map[string]*codeGroup)
	groups := make([]*codeGroup, 0)
	for _, rec := range records {
		code, name := record.SplitCode(extract(rec))
		if code == "" {
			code = emptyCode
		}
		g, ok := index[code]
		if !ok {
			g = &codeGroup{code: code, nameFromData: name}
			index[code] = g
			groups = append(groups, g)
		}
		g.count++
		g.revenue += rec.Revenue
		if g.nameFromData == "" && name != "" {
			g.nameFromData = name
		}
	}
	return groups
}

// sortByCount orders groups by descending count. Equal counts fall back to
// the lexical code order so the output is deterministic regardless of
// encounter order.
func sortByCount(groups []*codeGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].code < groups[j].code
	})
}

// describe resolves a cluster description: external lookup first, then the
// first description seen in the data, then the generic fallback.
func describe(code, nameFromData string, lookup map[string]string, fallback string) string {
	if desc, ok := lookup[code]; ok && desc != "" {
		return desc
	}
	if nameFromData != "" {
		return nameFromData
	}
	return fallback
}

// Summarize computes the headline metrics and the frequency clusters for a
// filtered record set. lookup maps ICD-10 codes to externally fetched
// descriptions and may be nil. Empty input yields a zeroed summary, never an
// error.
func Summarize(records []record.VisitRecord, lookup map[string]string) Summary {
	s := Summary{
		TotalVisits:   len(records),
		TopDiagnosis:  "N/A",
		TopDiagnoses:  []Cluster{},
		TopProcedures: []Cluster{},
	}
	if len(records) == 0 {
		return s
	}

	initials := make([]*int, len(records))
	discharges := make([]*int, len(records))
	revenue := 0.0
	for i, rec := range records {
		initials[i] = rec.InitialPainScore
		discharges[i] = rec.DischargePainScore
		revenue += rec.Revenue
	}
	initialVals := scoreValues(initials)
	dischargeVals := scoreValues(discharges)

	// Reduction is computed on the aggregate statistic, not per record:
	// mean(initial) vs mean(discharge), and likewise for the median.
	s.AvgReductionPercent = round1(ReductionPercent(Mean(initialVals), Mean(dischargeVals)))
	s.MedianReductionPercent = round1(ReductionPercent(Median(initialVals), Median(dischargeVals)))
	s.TotalRevenue = int(math.Round(revenue))

	diagGroups := groupByCode(records, func(r record.VisitRecord) string { return r.ICD10 }, UnknownDiagnosisCode)
	procGroups := groupByCode(records, func(r record.VisitRecord) string { return r.ICD9 }, UnknownDiagnosisCode)
	sortByCount(diagGroups)
	sortByCount(procGroups)

	s.DiagnosisClusterCount = len(diagGroups)
	s.ProcedureClusterCount = len(procGroups)

	total := float64(len(records))
	for _, g := range diagGroups[:min(10, len(diagGroups))] {
		s.TopDiagnoses = append(s.TopDiagnoses, Cluster{
			Code:         g.code,
			Count:        g.count,
			Description:  describe(g.code, g.nameFromData, lookup, FallbackDiagnosisDescription),
			SharePercent: round1(float64(g.count) / total * 100),
		})
	}
	// Procedure descriptions come from the data only; the external lookup is
	// keyed by ICD-10 diagnosis codes.
	for _, g := range procGroups[:min(10, len(procGroups))] {
		s.TopProcedures = append(s.TopProcedures, Cluster{
			Code:         g.code,
			Count:        g.count,
			Description:  describe(g.code, g.nameFromData, nil, FallbackProcedureDescription),
			SharePercent: round1(float64(g.count) / total * 100),
		})
	}

	if len(diagGroups) > 0 {
		s.TopDiagnosis = diagGroups[0].code
	}
	return s
}

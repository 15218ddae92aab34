// Package lookup maintains the ICD-10 description cache that the analytics
// views consult when labeling diagnosis clusters.
package lookup

import (
	"sort"

	"clinic_analytics/pkg/core/record"
)

// MaxFetchCodes caps how many uncached codes a single description fetch may
// request.
const MaxFetchCodes = 15

// DescriptionCache maps ICD-10 codes to human-readable descriptions fetched
// from an external source.
type DescriptionCache map[string]string

// Extend returns a new cache holding the union of c and extra. Neither input
// is modified; on key collision extra wins.
func (c DescriptionCache) Extend(extra map[string]string) DescriptionCache {
	merged := make(DescriptionCache, len(c)+len(extra))
	for code, desc := range c {
		merged[code] = desc
	}
	for code, desc := range extra {
		merged[code] = desc
	}
	return merged
}

// TopCodes returns the most frequent ICD-10 codes in records that are not yet
// cached, up to n (capped at MaxFetchCodes). Empty and placeholder codes are
// skipped. Ties break on lexical code order.
func TopCodes(records []record.VisitRecord, cache DescriptionCache, n int) []string {
	if n <= 0 || n > MaxFetchCodes {
		n = MaxFetchCodes
	}

	counts := make(map[string]int)
	codes := make([]string, 0)
	for _, rec := range records {
		code, _ := record.SplitCode(rec.ICD10)
		if code == "" || code == "Unknown" {
			continue
		}
		if _, ok := cache[code]; ok {
			continue
		}
		if _, ok := counts[code]; !ok {
			codes = append(codes, code)
		}
		counts[code]++
	}

	sort.SliceStable(codes, func(i, j int) bool {
		if counts[codes[i]] != counts[codes[j]] {
			return counts[codes[i]] > counts[codes[j]]
		}
		return codes[i] < codes[j]
	})
	if len(codes) > n {
		codes = codes[:n]
	}
	return codes
}

package record

import "sort"

// DateRange is an inclusive visit-date interval. Both fields empty means
// "no filter". Dates are zero-padded ISO strings, so the bounds compare
// lexically.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsZero reports whether the range is unbounded.
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// FilterByDate returns the records whose VisitDate falls inside the range,
// inclusive on both ends. An empty bound is open; a zero range returns the
// input slice unchanged.
func FilterByDate(records []VisitRecord, r DateRange) []VisitRecord {
	if r.IsZero() {
		return records
	}
	out := make([]VisitRecord, 0, len(records))
	for _, rec := range records {
		if r.Start != "" && rec.VisitDate < r.Start {
			continue
		}
		if r.End != "" && rec.VisitDate > r.End {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// AvailableDates returns the sorted distinct non-empty visit dates in the
// record set. Drives range-picker bounds in the presentation layer.
func AvailableDates(records []VisitRecord) []string {
	seen := make(map[string]bool, len(records))
	dates := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.VisitDate == "" || seen[rec.VisitDate] {
			continue
		}
		seen[rec.VisitDate] = true
		dates = append(dates, rec.VisitDate)
	}
	sort.Strings(dates)
	return dates
}

// FullRange returns the tightest range covering every dated record, or a zero
// range when no record carries a date.
func FullRange(records []VisitRecord) DateRange {
	dates := AvailableDates(records)
	if len(dates) == 0 {
		return DateRange{}
	}
	return DateRange{Start: dates[0], End: dates[len(dates)-1]}
}

package record

import "testing"

func TestParsePainScoreNumeric(t *testing.T) {
	// Plain digits
	if s := ParsePainScore("7"); s == nil || *s != 7 {
		t.Errorf("Expected 7, got %v", s)
	}
	// Leading digits with trailing text
	if s := ParsePainScore("7 points"); s == nil || *s != 7 {
		t.Errorf("Expected 7 from '7 points', got %v", s)
	}
	// Numbers arriving as float64 (JSON decode)
	if s := ParsePainScore(float64(5)); s == nil || *s != 5 {
		t.Errorf("Expected 5 from float64, got %v", s)
	}
}

func TestParsePainScoreScorePattern(t *testing.T) {
	// The HMS export annotates scores with a timestamp
	if s := ParsePainScore("SCORE : 10 (2025-06-04 ,14:12:55)"); s == nil || *s != 10 {
		t.Errorf("Expected 10 from annotated cell, got %v", s)
	}
	if s := ParsePainScore("score:3"); s == nil || *s != 3 {
		t.Errorf("Expected 3 from compact form, got %v", s)
	}
}

func TestParsePainScoreMissingMarkers(t *testing.T) {
	missing := []any{
		nil,
		"",
		"   ",
		"ไม่พบข้อมูล",
		"N/A",
		"no info available",
		"-",
		"Unknown",
	}
	for _, v := range missing {
		if s := ParsePainScore(v); s != nil {
			t.Errorf("Expected nil for %v, got %d", v, *s)
		}
	}
}

func TestParsePainScoreZeroMarkers(t *testing.T) {
	// "no pain" is a recorded zero, not missing data
	for _, v := range []string{"No Pain", "none", "patient reports no pain"} {
		s := ParsePainScore(v)
		if s == nil || *s != 0 {
			t.Errorf("Expected 0 for %q, got %v", v, s)
		}
	}
}

func TestParsePainScoreMarkersBeforeDigits(t *testing.T) {
	// Missing markers win even when the text contains digits
	if s := ParsePainScore("n/a 5"); s != nil {
		t.Errorf("Expected nil for 'n/a 5', got %d", *s)
	}
	// Garbage without leading digits degrades to nil
	if s := ParsePainScore("mild discomfort"); s != nil {
		t.Errorf("Expected nil for free text, got %d", *s)
	}
}

func TestCustomMarkers(t *testing.T) {
	m := ScoreMarkers{
		MissingExact: []string{"ไม่ระบุ"},
		ZeroExact:    []string{"ปกติ"},
	}
	if s := m.Parse("ไม่ระบุ"); s != nil {
		t.Errorf("Expected nil for custom missing marker, got %d", *s)
	}
	if s := m.Parse("ปกติ"); s == nil || *s != 0 {
		t.Errorf("Expected 0 for custom zero marker, got %v", s)
	}
	// Custom set does not inherit defaults
	if s := m.Parse("none"); s != nil {
		t.Errorf("Expected nil ('none' not in custom set, no leading digits), got %d", *s)
	}
}

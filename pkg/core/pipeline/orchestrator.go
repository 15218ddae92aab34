// Package pipeline ties ingestion, analytics, and the narrative layer into
// the single orchestrator the API and CLI frontends drive.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"

	"clinic_analytics/pkg/core/analytics"
	"clinic_analytics/pkg/core/ingest"
	"clinic_analytics/pkg/core/llm"
	"clinic_analytics/pkg/core/lookup"
	"clinic_analytics/pkg/core/narrative"
	"clinic_analytics/pkg/core/record"
)

// Dashboard bundles the clinical overview for one filtered range.
type Dashboard struct {
	Summary   analytics.Summary        `json:"summary"`
	PainTrend []analytics.MonthlyPain  `json:"painTrend"`
	Volume    []analytics.MonthlyCount `json:"volume"`
}

// PatientView is a profile plus its AI narrative.
type PatientView struct {
	Profile   analytics.Profile   `json:"profile"`
	Narrative narrative.Narrative `json:"narrative"`
}

// Orchestrator owns the loaded snapshot and serves every analytics view over
// it. All methods are safe for concurrent use; the HTTP handlers call them
// directly.
type Orchestrator struct {
	cfg Config

	narrator *narrative.Service
	descGen  narrative.TextGenerator

	mu       sync.RWMutex
	snapshot ingest.Snapshot
	cache    lookup.DescriptionCache
}

// NewOrchestrator wires the orchestrator with its narrative dependencies.
// descGen may be nil when AI features are disabled; description refreshes
// then become no-ops.
func NewOrchestrator(cfg Config, provider llm.Provider, descGen narrative.TextGenerator) *Orchestrator {
	return &Orchestrator{
		cfg: cfg,
		narrator: &narrative.Service{
			Provider:    provider,
			Model:       cfg.LLM.InsightModel,
			MaxAttempts: cfg.LLM.MaxAttempts,
		},
		descGen: descGen,
		cache:   lookup.DescriptionCache{},
	}
}

// LoadFile replaces the active snapshot with the contents of path.
func (o *Orchestrator) LoadFile(path string) error {
	snap, err := ingest.LoadFile(path, o.cfg.ScoreMarkers())
	if err != nil {
		return err
	}
	o.setSnapshot(snap)
	return nil
}

// LoadRows replaces the active snapshot with pre-parsed rows (e.g. from an
// upload handler).
func (o *Orchestrator) LoadRows(source string, rows []record.RawRow) {
	o.setSnapshot(ingest.NewSnapshot(source, record.NormalizeWith(rows, o.cfg.ScoreMarkers())))
}

func (o *Orchestrator) setSnapshot(snap ingest.Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snapshot = snap
	o.cache = lookup.DescriptionCache{}
	log.Printf("[DATA] Loaded snapshot %s: %d records from %s",
		snap.ID, len(snap.Records), snap.Source)
}

// Snapshot returns the active snapshot.
func (o *Orchestrator) Snapshot() ingest.Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.snapshot
}

func (o *Orchestrator) view(r record.DateRange) ([]record.VisitRecord, lookup.DescriptionCache) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return record.FilterByDate(o.snapshot.Records, r), o.cache
}

// AvailableDates returns the sorted distinct visit dates of the snapshot.
func (o *Orchestrator) AvailableDates() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return record.AvailableDates(o.snapshot.Records)
}

// Dashboard computes the clinical overview for the given range.
func (o *Orchestrator) Dashboard(r record.DateRange) Dashboard {
	filtered, cache := o.view(r)
	return Dashboard{
		Summary:   analytics.Summarize(filtered, cache),
		PainTrend: analytics.MonthlyPainTrend(filtered),
		Volume:    analytics.MonthlyVolume(filtered),
	}
}

// Revenue computes the financial view for the given range.
func (o *Orchestrator) Revenue(r record.DateRange) analytics.RevenueStats {
	filtered, cache := o.view(r)
	return analytics.ComputeRevenueStats(filtered, cache)
}

// Registry computes registry counters. The year-to-date and latest-month
// counts always anchor on the full snapshot regardless of the filter.
func (o *Orchestrator) Registry(r record.DateRange) analytics.RegistryStats {
	o.mu.RLock()
	all := o.snapshot.Records
	o.mu.RUnlock()
	return analytics.ComputeRegistryStats(all, record.FilterByDate(all, r))
}

// RepeatVisits lists within-month repeat patients over the full snapshot.
func (o *Orchestrator) RepeatVisits() []analytics.RepeatMonth {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return analytics.RepeatVisits(o.snapshot.Records)
}

// Profile assembles one patient's unfiltered history.
func (o *Orchestrator) Profile(hn string) (analytics.Profile, error) {
	o.mu.RLock()
	records := o.snapshot.Records
	o.mu.RUnlock()

	p, ok := analytics.PatientProfile(records, hn)
	if !ok {
		return analytics.Profile{}, fmt.Errorf("no visits found for HN %s", hn)
	}
	return p, nil
}

// PatientStory combines the profile with its AI narrative.
func (o *Orchestrator) PatientStory(ctx context.Context, hn string) (PatientView, error) {
	p, err := o.Profile(hn)
	if err != nil {
		return PatientView{}, err
	}
	return PatientView{
		Profile:   p,
		Narrative: o.narrator.PatientNarrative(ctx, p.Name, p.Visits),
	}, nil
}

// Insights generates the cohort commentary for the given range.
func (o *Orchestrator) Insights(ctx context.Context, r record.DateRange) narrative.Insight {
	filtered, _ := o.view(r)
	return o.narrator.CohortInsights(ctx, filtered)
}

// RefreshDescriptions fetches descriptions for the most frequent uncached
// ICD-10 codes and merges them into the cache. Best effort; failures leave
// the cache untouched.
func (o *Orchestrator) RefreshDescriptions(ctx context.Context) int {
	if o.descGen == nil {
		return 0
	}

	o.mu.RLock()
	codes := lookup.TopCodes(o.snapshot.Records, o.cache, lookup.MaxFetchCodes)
	o.mu.RUnlock()
	if len(codes) == 0 {
		return 0
	}

	fetched := narrative.FetchDescriptions(ctx, o.descGen, codes, o.cfg.LLM.MaxAttempts)
	if len(fetched) == 0 {
		return 0
	}

	o.mu.Lock()
	o.cache = o.cache.Extend(fetched)
	o.mu.Unlock()
	log.Printf("[DATA] Cached %d ICD-10 descriptions", len(fetched))
	return len(fetched)
}

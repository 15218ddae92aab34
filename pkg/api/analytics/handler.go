package analytics

import (
	"encoding/json"
	"fmt"
	"net/http"

	"clinic_analytics/pkg/core/pipeline"
	"clinic_analytics/pkg/core/record"
)

var orchestrator *pipeline.Orchestrator

// InitHandler wires the shared orchestrator used by every endpoint.
func InitHandler(o *pipeline.Orchestrator) {
	orchestrator = o
}

// cors applies the permissive headers the local dashboard frontend expects.
// Returns true when the request was a preflight and is already answered.
func cors(w http.ResponseWriter, r *http.Request, methods string) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods+", OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func rangeFromQuery(r *http.Request) record.DateRange {
	return record.DateRange{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}
}

type loadRequest struct {
	Path string `json:"path"`
}

type datasetRequest struct {
	Source string          `json:"source"`
	Rows   []record.RawRow `json:"rows"`
}

// HandleDataset replaces the active snapshot with rows posted as JSON, the
// path a browser upload takes.
func HandleDataset(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "POST") {
		return
	}

	var req datasetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Source == "" {
		req.Source = "upload"
	}

	orchestrator.LoadRows(req.Source, req.Rows)
	snap := orchestrator.Snapshot()
	bounds := record.FullRange(snap.Records)
	fmt.Printf("[DATA] Snapshot %s active (%d records)\n", snap.ID, len(snap.Records))
	writeJSON(w, map[string]interface{}{
		"snapshotId": snap.ID,
		"records":    len(snap.Records),
		"source":     snap.Source,
		"minDate":    bounds.Start,
		"maxDate":    bounds.End,
	})
}

// HandleLoad replaces the active snapshot with a file from disk.
func HandleLoad(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "POST") {
		return
	}

	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}

	if err := orchestrator.LoadFile(req.Path); err != nil {
		fmt.Printf("[DATA] Load failed: %v\n", err)
		http.Error(w, fmt.Sprintf("Load failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	snap := orchestrator.Snapshot()
	fmt.Printf("[DATA] Snapshot %s active (%d records)\n", snap.ID, len(snap.Records))
	writeJSON(w, map[string]interface{}{
		"snapshotId": snap.ID,
		"records":    len(snap.Records),
		"source":     snap.Source,
	})
}

// HandleDates returns the distinct visit dates of the snapshot so the
// frontend can bound its range picker.
func HandleDates(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "GET") {
		return
	}
	writeJSON(w, map[string]interface{}{"dates": orchestrator.AvailableDates()})
}

// HandleDashboard serves the clinical overview for the requested range.
func HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "GET") {
		return
	}
	writeJSON(w, orchestrator.Dashboard(rangeFromQuery(r)))
}

// HandleRevenue serves the financial view for the requested range.
func HandleRevenue(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "GET") {
		return
	}
	writeJSON(w, orchestrator.Revenue(rangeFromQuery(r)))
}

// HandleRegistry serves the registry counters.
func HandleRegistry(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "GET") {
		return
	}
	writeJSON(w, orchestrator.Registry(rangeFromQuery(r)))
}

// HandleRepeats lists within-month repeat patients over the full snapshot.
func HandleRepeats(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "GET") {
		return
	}
	writeJSON(w, map[string]interface{}{"months": orchestrator.RepeatVisits()})
}

// HandlePatient serves one patient's full history. With ai=1 the response
// includes the generated clinical narrative.
func HandlePatient(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "GET") {
		return
	}

	hn := r.URL.Query().Get("hn")
	if hn == "" {
		http.Error(w, "hn is required", http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("ai") == "1" {
		view, err := orchestrator.PatientStory(r.Context(), hn)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, view)
		return
	}

	profile, err := orchestrator.Profile(hn)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, profile)
}

// HandleInsights generates the AI cohort commentary for the requested range.
// The response is always 200; provider outages come back as advisory text.
func HandleInsights(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "GET") {
		return
	}
	fmt.Println("[AI] Generating cohort insights...")
	writeJSON(w, orchestrator.Insights(r.Context(), rangeFromQuery(r)))
}

// HandleDescriptions refreshes the ICD-10 description cache.
func HandleDescriptions(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "POST") {
		return
	}
	fetched := orchestrator.RefreshDescriptions(r.Context())
	writeJSON(w, map[string]interface{}{"fetched": fetched})
}

// Package handlers is the daemon's small operational surface: liveness,
// last-run status, and a manual trigger.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"cartrade-engine/internal/scheduler"
)

type Handlers struct {
	Sched *scheduler.Scheduler
}

func (h Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	fmt.Fprintln(w, "ok")
}

func (h Handlers) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.Sched.Status())
}

// Run kicks off a crawl outside the schedule. 409 means one is already in
// flight; runs never overlap.
func (h Handlers) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	if !h.Sched.Trigger() {
		writeJSON(w, http.StatusConflict, map[string]bool{"started": false})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]bool{"started": true})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

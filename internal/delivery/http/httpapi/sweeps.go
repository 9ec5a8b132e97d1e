package httpapi

import (
	"net/http"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type sweepResponse struct {
	Scanned       int      `json:"scanned"`
	RemindersSent int      `json:"reminders_sent"`
	AutoCompleted int      `json:"auto_completed"`
	Skipped       int      `json:"skipped"`
	Errors        []string `json:"errors,omitempty"`
}

type deletionSweepResponse struct {
	Scanned int      `json:"scanned"`
	Deleted int      `json:"deleted"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// RunReminderSweep triggers one sweep tick on demand, outside the
// ticker schedule. Operators use it after incident recovery.
func (h *EscrowHandler) RunReminderSweep(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if !actor.IsAdmin() {
		writeError(w, &domain.AuthorizationError{ActorID: actor.ID, Action: "run reminder sweep"})
		return
	}

	report, err := h.Transactions.RunReminderSweep(time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	response := sweepResponse{
		Scanned:       report.Scanned,
		RemindersSent: report.RemindersSent,
		AutoCompleted: report.AutoCompleted,
		Skipped:       report.Skipped,
	}
	for _, sweepErr := range report.Errors {
		response.Errors = append(response.Errors, sweepErr.Err.Error())
	}

	// Per-entity failures surface as a non-2xx so the caller's scheduler
	// records the run as degraded; the report still covers every entity.
	if report.Failed() {
		writeJSON(w, http.StatusInternalServerError, response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *EscrowHandler) RunDeletionSweep(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if !actor.IsAdmin() {
		writeError(w, &domain.AuthorizationError{ActorID: actor.ID, Action: "run deletion sweep"})
		return
	}

	report, err := h.Deletions.ProcessScheduledDeletions(r.Context(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	response := deletionSweepResponse{
		Scanned: report.Scanned,
		Deleted: report.Deleted,
		Failed:  report.Failed,
	}
	for _, deletionErr := range report.Errors {
		response.Errors = append(response.Errors, deletionErr.Err.Error())
	}

	if report.HasFailures() {
		writeJSON(w, http.StatusInternalServerError, response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

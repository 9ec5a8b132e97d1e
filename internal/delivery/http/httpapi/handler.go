package httpapi

import (
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EscrowHandler is the admin-facing JSON API over the escrow core.
// Party-facing surfaces (web checkout, contract signing UI) live in
// other services; everything here assumes an authenticated caller whose
// identity arrives in the X-Actor-ID / X-Actor-Role headers.
type EscrowHandler struct {
	Transactions domain.TransactionUsecase
	Disputes     domain.DisputeUsecase
	Deletions    domain.DeletionUsecase
}

func NewEscrowHandler(
	transactions domain.TransactionUsecase,
	disputes domain.DisputeUsecase,
	deletions domain.DeletionUsecase,
) *EscrowHandler {
	return &EscrowHandler{
		Transactions: transactions,
		Disputes:     disputes,
		Deletions:    deletions,
	}
}

func (h *EscrowHandler) Router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /transactions", h.CreateTransaction)
	mux.HandleFunc("GET /transactions/{id}", h.GetTransaction)
	mux.HandleFunc("GET /transactions/code/{code}", h.GetTransactionByCode)
	mux.HandleFunc("POST /transactions/{id}/transition", h.TransitionTransaction)

	mux.HandleFunc("POST /disputes", h.OpenDispute)
	mux.HandleFunc("GET /disputes", h.ListDisputes)
	mux.HandleFunc("GET /disputes/{id}", h.GetDispute)
	mux.HandleFunc("POST /disputes/{id}/resolve", h.ResolveDispute)

	mux.HandleFunc("POST /admin/sweeps/reminders", h.RunReminderSweep)
	mux.HandleFunc("POST /admin/sweeps/deletions", h.RunDeletionSweep)

	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

func actorFromRequest(r *http.Request) domain.Actor {
	return domain.Actor{
		ID:   r.Header.Get("X-Actor-ID"),
		Role: domain.ActorRole(r.Header.Get("X-Actor-Role")),
	}
}

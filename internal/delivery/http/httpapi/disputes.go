package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type openDisputeRequest struct {
	TransactionID string   `json:"transaction_id"`
	Reason        string   `json:"reason"`
	Description   string   `json:"description"`
	EvidenceURLs  []string `json:"evidence_urls,omitempty"`
}

type resolveDisputeRequest struct {
	Resolution string `json:"resolution"`
	Notes      string `json:"notes,omitempty"`
}

type disputeResponse struct {
	ID              string     `json:"id"`
	TransactionID   string     `json:"transaction_id"`
	OpenedBy        string     `json:"opened_by"`
	Reason          string     `json:"reason"`
	Description     string     `json:"description"`
	EvidenceURLs    []string   `json:"evidence_urls,omitempty"`
	Status          string     `json:"status"`
	Resolution      string     `json:"resolution,omitempty"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	ResolvedBy      string     `json:"resolved_by,omitempty"`
	OpenedAt        time.Time  `json:"opened_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}

type disputeListResponse struct {
	Disputes []disputeResponse `json:"disputes"`
	Total    int64             `json:"total"`
	Page     int64             `json:"page"`
	Limit    int64             `json:"limit"`
}

func toDisputeResponse(dispute *domain.Dispute) disputeResponse {
	return disputeResponse{
		ID:              dispute.ID,
		TransactionID:   dispute.TransactionID,
		OpenedBy:        dispute.OpenedBy,
		Reason:          string(dispute.Reason),
		Description:     dispute.Description,
		EvidenceURLs:    dispute.EvidenceURLs,
		Status:          string(dispute.Status),
		Resolution:      string(dispute.Resolution),
		ResolutionNotes: dispute.ResolutionNotes,
		ResolvedBy:      dispute.ResolvedBy,
		OpenedAt:        dispute.OpenedAt,
		ResolvedAt:      dispute.ResolvedAt,
	}
}

func (h *EscrowHandler) OpenDispute(w http.ResponseWriter, r *http.Request) {
	var req openDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.TransactionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "transaction_id is required"})
		return
	}

	dispute, err := h.Disputes.OpenDispute(&domain.OpenDisputeInput{
		TransactionID: req.TransactionID,
		Reason:        domain.DisputeReason(req.Reason),
		Description:   req.Description,
		EvidenceURLs:  req.EvidenceURLs,
		Actor:         actorFromRequest(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDisputeResponse(dispute))
}

func (h *EscrowHandler) GetDispute(w http.ResponseWriter, r *http.Request) {
	dispute, err := h.Disputes.GetDisputeByID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDisputeResponse(dispute))
}

func (h *EscrowHandler) ListDisputes(w http.ResponseWriter, r *http.Request) {
	page := parseInt64(r.URL.Query().Get("page"), 1)
	limit := parseInt64(r.URL.Query().Get("limit"), 20)

	disputes, total, err := h.Disputes.GetDisputes(page, limit, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}

	response := disputeListResponse{
		Disputes: make([]disputeResponse, len(disputes)),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}
	for i, dispute := range disputes {
		response.Disputes[i] = toDisputeResponse(dispute)
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *EscrowHandler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	var req resolveDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	dispute, err := h.Disputes.ResolveDispute(
		r.PathValue("id"),
		domain.ResolutionType(req.Resolution),
		req.Notes,
		actorFromRequest(r),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDisputeResponse(dispute))
}

func parseInt64(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

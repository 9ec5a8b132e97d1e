package mappers

import (
	"encoding/json"
	"log/slog"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMDispute(dispute *domain.Dispute) *models.DisputeModel {
	evidence, err := json.Marshal(dispute.EvidenceURLs)
	if err != nil {
		slog.Error("failed to encode dispute evidence", "dispute_id", dispute.ID, "error", err.Error())
	}
	return &models.DisputeModel{
		ID:              dispute.ID,
		TransactionID:   dispute.TransactionID,
		OpenedBy:        dispute.OpenedBy,
		Reason:          string(dispute.Reason),
		Description:     dispute.Description,
		EvidenceJSON:    string(evidence),
		Status:          string(dispute.Status),
		Resolution:      string(dispute.Resolution),
		ResolutionNotes: dispute.ResolutionNotes,
		ResolvedBy:      dispute.ResolvedBy,
		OpenedAt:        dispute.OpenedAt,
		ResolvedAt:      dispute.ResolvedAt,
	}
}

func ToDomainDispute(model *models.DisputeModel) *domain.Dispute {
	var evidence []string
	if model.EvidenceJSON != "" {
		// Corrupt stored evidence degrades to an empty list; the row
		// itself stays readable.
		if err := json.Unmarshal([]byte(model.EvidenceJSON), &evidence); err != nil {
			slog.Error("corrupt dispute evidence payload", "dispute_id", model.ID, "error", err.Error())
		}
	}
	return &domain.Dispute{
		ID:              model.ID,
		TransactionID:   model.TransactionID,
		OpenedBy:        model.OpenedBy,
		Reason:          domain.DisputeReason(model.Reason),
		Description:     model.Description,
		EvidenceURLs:    evidence,
		Status:          domain.DisputeStatus(model.Status),
		Resolution:      domain.ResolutionType(model.Resolution),
		ResolutionNotes: model.ResolutionNotes,
		ResolvedBy:      model.ResolvedBy,
		OpenedAt:        model.OpenedAt,
		ResolvedAt:      model.ResolvedAt,
	}
}

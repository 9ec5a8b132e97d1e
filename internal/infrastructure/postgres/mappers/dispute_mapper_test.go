package mappers

import (
	"testing"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func TestToDomainDisputeCorruptEvidence(t *testing.T) {
	model := &models.DisputeModel{
		ID:           "dis-1",
		EvidenceJSON: `{"not":"a list`,
		Status:       string(domain.DisputeOpen),
		OpenedAt:     time.Now(),
	}

	dispute := ToDomainDispute(model)

	if len(dispute.EvidenceURLs) != 0 {
		t.Errorf("EvidenceURLs = %v, want empty", dispute.EvidenceURLs)
	}
	if dispute.ID != "dis-1" {
		t.Errorf("ID = %s, want dis-1", dispute.ID)
	}
}

func TestDisputeEvidenceRoundTrip(t *testing.T) {
	dispute := &domain.Dispute{
		ID:           "dis-2",
		EvidenceURLs: []string{"https://files.example/evidence/1.jpg", "https://files.example/evidence/2.jpg"},
		Status:       domain.DisputeOpen,
		OpenedAt:     time.Now(),
	}

	got := ToDomainDispute(ToGORMDispute(dispute))

	if len(got.EvidenceURLs) != 2 || got.EvidenceURLs[1] != dispute.EvidenceURLs[1] {
		t.Errorf("EvidenceURLs = %v, want %v", got.EvidenceURLs, dispute.EvidenceURLs)
	}
}

package usecase

import (
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type DefaultDisputeUsecase struct {
	TransactionUC domain.TransactionUsecase
	DisputeRepo   domain.DisputeRepository
	Notifier      domain.Notifier
	Publisher     domain.EventPublisher
	Metrics       *metrics.EscrowMetrics
}

func NewDefaultDisputeUsecase(
	transactionUC domain.TransactionUsecase,
	disputeRepo domain.DisputeRepository,
	notifier domain.Notifier,
	publisher domain.EventPublisher,
	escrowMetrics *metrics.EscrowMetrics,
) *DefaultDisputeUsecase {
	return &DefaultDisputeUsecase{
		TransactionUC: transactionUC,
		DisputeRepo:   disputeRepo,
		Notifier:      notifier,
		Publisher:     publisher,
		Metrics:       escrowMetrics,
	}
}

var _ domain.DisputeUsecase = (*DefaultDisputeUsecase)(nil)

// OpenDispute moves the transaction to disputed and creates the
// companion dispute row. The transition runs first so that its guard
// rejects disputes from any status where funds are not yet held.
func (uc *DefaultDisputeUsecase) OpenDispute(input *domain.OpenDisputeInput) (*domain.Dispute, error) {
	actor := input.Actor
	if actor.Role != domain.RoleBuyer && !actor.IsAdmin() {
		return nil, &domain.AuthorizationError{ActorID: actor.ID, Action: "open dispute"}
	}
	if !isKnownDisputeReason(input.Reason) {
		return nil, status.Error(codes.InvalidArgument, "unknown dispute reason")
	}

	transaction, err := uc.TransactionUC.Transition(input.TransactionID, domain.StatusDisputed, actor)
	if err != nil {
		return nil, err
	}

	dispute := &domain.Dispute{
		ID:            uuid.NewString(),
		TransactionID: transaction.ID,
		OpenedBy:      actor.ID,
		Reason:        input.Reason,
		Description:   input.Description,
		EvidenceURLs:  input.EvidenceURLs,
		Status:        domain.DisputeOpen,
		OpenedAt:      time.Now(),
	}
	if err := uc.DisputeRepo.CreateDispute(dispute); err != nil {
		return nil, err
	}

	uc.Metrics.DisputesOpenedTotal.Inc()
	uc.publishDisputeEvent(dispute)

	if err := uc.Notifier.Notify(transaction.SellerID, domain.TemplateDisputeOpened, map[string]any{
		"transaction_code": transaction.TransactionCode,
		"reason":           string(dispute.Reason),
	}); err != nil {
		slog.Error("dispute notification failed", "dispute_id", dispute.ID, "error", err.Error())
	}

	return dispute, nil
}

// ResolveDispute is admin-only. The chosen resolution drives the
// transaction into its terminal status; escrow settlement rides on that
// transition.
func (uc *DefaultDisputeUsecase) ResolveDispute(
	disputeID string,
	resolution domain.ResolutionType,
	notes string,
	actor domain.Actor,
) (*domain.Dispute, error) {
	if !actor.IsAdmin() {
		return nil, &domain.AuthorizationError{ActorID: actor.ID, Action: "resolve dispute"}
	}
	if resolution != domain.ResolutionRefundBuyer && resolution != domain.ResolutionReleaseToSeller {
		return nil, status.Error(codes.InvalidArgument, "unknown resolution type")
	}

	dispute, err := uc.DisputeRepo.GetDisputeByID(disputeID)
	if err != nil {
		return nil, err
	}
	if dispute.Status != domain.DisputeOpen {
		return nil, domain.ErrDisputeNotFound
	}

	// The terminal transition and the dispute-row flip commit in one
	// database transaction, so a failure on either side leaves both
	// rows untouched and the resolution can be retried. Racing
	// resolutions serialize on the transaction row lock.
	transaction, err := uc.TransactionUC.ResolveTransaction(dispute.TransactionID, disputeID, resolution, notes, actor)
	if err != nil {
		return nil, err
	}

	uc.Metrics.DisputesResolvedTotal.WithLabelValues(string(resolution)).Inc()

	dispute, err = uc.DisputeRepo.GetDisputeByID(disputeID)
	if err != nil {
		return nil, err
	}
	uc.publishDisputeEvent(dispute)

	payload := map[string]any{
		"transaction_code": transaction.TransactionCode,
		"resolution":       string(resolution),
	}
	for _, recipient := range []string{transaction.BuyerID, transaction.SellerID} {
		if err := uc.Notifier.Notify(recipient, domain.TemplateDisputeResolved, payload); err != nil {
			slog.Error("resolution notification failed", "dispute_id", dispute.ID, "recipient", recipient, "error", err.Error())
		}
	}

	return dispute, nil
}

func (uc *DefaultDisputeUsecase) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	return uc.DisputeRepo.GetDisputeByID(disputeID)
}

func (uc *DefaultDisputeUsecase) GetDisputeByTransactionID(transactionID string) (*domain.Dispute, error) {
	return uc.DisputeRepo.GetDisputeByTransactionID(transactionID)
}

func (uc *DefaultDisputeUsecase) GetDisputes(page, limit int64, status string) ([]*domain.Dispute, int64, error) {
	return uc.DisputeRepo.GetDisputes(page, limit, status)
}

func (uc *DefaultDisputeUsecase) publishDisputeEvent(dispute *domain.Dispute) {
	go func(event domain.DisputeEvent) {
		if err := uc.Publisher.PublishDispute(event); err != nil {
			logPublishFailure("dispute", dispute.ID, err)
		}
	}(domain.DisputeEvent{
		DisputeID:     dispute.ID,
		TransactionID: dispute.TransactionID,
		Reason:        string(dispute.Reason),
		Status:        string(dispute.Status),
		Resolution:    dispute.Resolution,
		OccurredAt:    time.Now(),
	})
}

func isKnownDisputeReason(reason domain.DisputeReason) bool {
	switch reason {
	case domain.ReasonVehicleMismatch,
		domain.ReasonDamageNotDisclosed,
		domain.ReasonDocumentsMissing,
		domain.ReasonSellerUnresponsive,
		domain.ReasonOther:
		return true
	}
	return false
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Transition moves a transaction along one edge of the adjacency table.
// The guard and the side-effect stamps run atomically inside the
// repository; escrow money movement and notifications follow a
// successful commit and never mutate the row again.
func (uc *DefaultTransactionUsecase) Transition(
	transactionID string,
	target domain.TransactionStatus,
	actor domain.Actor,
) (*domain.Transaction, error) {
	return uc.applyTransition(transactionID, target, actor, nil)
}

// ResolveTransaction is the dispute-close path: the decided resolution
// and its notes land on the transaction row, and the dispute row flips
// to resolved, in the same write that makes the transaction terminal.
func (uc *DefaultTransactionUsecase) ResolveTransaction(
	transactionID, disputeID string,
	resolution domain.ResolutionType,
	notes string,
	actor domain.Actor,
) (*domain.Transaction, error) {
	var target domain.TransactionStatus
	switch resolution {
	case domain.ResolutionRefundBuyer:
		target = domain.StatusCancelled
	case domain.ResolutionReleaseToSeller:
		target = domain.StatusCompleted
	default:
		return nil, status.Error(codes.InvalidArgument, "unknown resolution type")
	}

	return uc.applyTransition(transactionID, target, actor, &domain.DisputeResolution{
		DisputeID:  disputeID,
		Resolution: resolution,
		Notes:      notes,
		ResolvedBy: actor.ID,
		ResolvedAt: time.Now(),
	})
}

func (uc *DefaultTransactionUsecase) applyTransition(
	transactionID string,
	target domain.TransactionStatus,
	actor domain.Actor,
	resolution *domain.DisputeResolution,
) (*domain.Transaction, error) {
	if !domain.IsKnownStatus(target) {
		return nil, &domain.InvalidTransitionError{From: "", To: target}
	}
	if err := uc.authorizeTransition(target, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	var previous domain.TransactionStatus

	mutate := func(transaction *domain.Transaction) error {
		previous = transaction.Status
		// Leaving disputed is reserved for the resolution path, so a
		// sweep or manual transition racing a dispute loses.
		if previous == domain.StatusDisputed && resolution == nil {
			return &domain.InvalidTransitionError{From: previous, To: target}
		}
		applyTransitionStamps(transaction, previous, target, now, uc.Policy.InspectionWindow, uc.Policy.PaymentWindow)
		if resolution != nil {
			transaction.Resolution = resolution.Resolution
			transaction.ResolutionNotes = resolution.Notes
		}
		return nil
	}

	var updated *domain.Transaction
	var err error
	if resolution != nil {
		updated, err = uc.TransactionRepo.ProcessDisputeResolution(transactionID, target, *resolution, mutate)
	} else {
		updated, err = uc.TransactionRepo.ProcessStatusTransition(transactionID, target, mutate)
	}
	if err != nil {
		var invalid *domain.InvalidTransitionError
		if errors.As(err, &invalid) {
			uc.Metrics.TransitionsRejectedTotal.WithLabelValues(string(invalid.From), string(invalid.To)).Inc()
		}
		return nil, err
	}

	// Duplicate completion: the repo returned without invoking the
	// mutate closure, so no side effects may fire a second time.
	if previous == "" {
		return updated, nil
	}

	uc.Metrics.TransitionsTotal.WithLabelValues(string(previous), string(target), string(actor.Role)).Inc()

	if err := uc.AuditLogger.LogTransition(context.Background(), logger.TransitionEvent{
		TransactionID: updated.ID,
		FromStatus:    string(previous),
		ToStatus:      string(target),
		ActorID:       actor.ID,
		ActorRole:     string(actor.Role),
		Timestamp:     now,
	}); err != nil {
		slog.Error("failed to audit-log transition", "transaction_id", updated.ID, "error", err.Error())
	}

	uc.settleEscrow(updated, previous, target)
	uc.publishTransactionEvent(updated, previous, actor)
	uc.notifyStatusChange(updated, previous, target)

	return updated, nil
}

func (uc *DefaultTransactionUsecase) authorizeTransition(target domain.TransactionStatus, actor domain.Actor) error {
	if actor.ID == "" {
		return &domain.AuthorizationError{ActorID: actor.ID, Action: "transition transaction"}
	}
	// Manual bank transfers are attested by the payment desk only.
	if target == domain.StatusPaymentVerified && !actor.IsAdmin() && !actor.IsSystem() {
		return &domain.AuthorizationError{ActorID: actor.ID, Action: "verify payment"}
	}
	return nil
}

// applyTransitionStamps applies transition-specific side effects. These
// commit atomically with the status write.
func applyTransitionStamps(
	transaction *domain.Transaction,
	from, target domain.TransactionStatus,
	now time.Time,
	inspectionWindow, paymentWindow time.Duration,
) {
	// The inspection deadline exists only while the inspection runs.
	if from == domain.StatusInspectionPeriod && target != domain.StatusInspectionPeriod {
		transaction.InspectionDeadline = nil
	}

	switch target {
	case domain.StatusContractGenerated:
		stamp := now
		transaction.ContractGeneratedAt = &stamp
	case domain.StatusAwaitingBankTransfer:
		if transaction.PaymentDeadline == nil {
			deadline := now.Add(paymentWindow)
			transaction.PaymentDeadline = &deadline
		}
	case domain.StatusPaymentSubmitted:
		transaction.PaymentSubmitted = true
	case domain.StatusPaymentVerified:
		stamp := now
		transaction.PaymentVerifiedAt = &stamp
		transaction.PaymentSubmitted = false
	case domain.StatusInspectionPeriod:
		// Window counted from this transition, not from creation.
		deadline := now.Add(inspectionWindow)
		transaction.InspectionDeadline = &deadline
	case domain.StatusCompleted:
		stamp := now
		transaction.CompletedAt = &stamp
	case domain.StatusCancelled:
		stamp := now
		transaction.CancelledAt = &stamp
	case domain.StatusDisputed:
		stamp := now
		transaction.DisputeOpenedAt = &stamp
	}
}

// settleEscrow moves the held funds after a terminal transition. Before
// payment verification no money ever entered escrow, so there is
// nothing to settle.
func (uc *DefaultTransactionUsecase) settleEscrow(transaction *domain.Transaction, from, target domain.TransactionStatus) {
	fundsHeld := from == domain.StatusPaymentVerified ||
		from == domain.StatusInspectionPeriod ||
		from == domain.StatusDisputed

	if !fundsHeld {
		return
	}

	switch target {
	case domain.StatusCompleted:
		if err := uc.releaseToSeller(transaction); err != nil {
			slog.Error("escrow release failed", "transaction_id", transaction.ID, "error", err.Error())
		}
	case domain.StatusCancelled:
		if err := uc.refundBuyer(transaction); err != nil {
			slog.Error("escrow refund failed", "transaction_id", transaction.ID, "error", err.Error())
		}
	}
}

func (uc *DefaultTransactionUsecase) releaseToSeller(transaction *domain.Transaction) error {
	sellerAmount := transaction.Amount - transaction.ServiceFee - transaction.DealerCommission

	if err := uc.PaymentHandler.Release(transaction.ID, transaction.SellerID, sellerAmount, transaction.Currency); err != nil {
		return domain.ErrReleaseFailed
	}

	now := time.Now()
	payments := []*domain.Payment{
		{
			ID:            uuid.NewString(),
			TransactionID: transaction.ID,
			UserID:        transaction.SellerID,
			PayeeName:     transaction.SellerName,
			PayeeEmail:    transaction.SellerEmail,
			Amount:        sellerAmount,
			Currency:      transaction.Currency,
			Type:          domain.PaymentRelease,
			ProcessedAt:   now,
		},
	}
	if transaction.ServiceFee > 0 {
		payments = append(payments, &domain.Payment{
			ID:            uuid.NewString(),
			TransactionID: transaction.ID,
			UserID:        transaction.SellerID,
			Amount:        transaction.ServiceFee,
			Currency:      transaction.Currency,
			Type:          domain.PaymentServiceFee,
			ProcessedAt:   now,
		})
	}
	if transaction.DealerCommission > 0 && transaction.DealerID != "" {
		payments = append(payments, &domain.Payment{
			ID:            uuid.NewString(),
			TransactionID: transaction.ID,
			UserID:        transaction.DealerID,
			Amount:        transaction.DealerCommission,
			Currency:      transaction.Currency,
			Type:          domain.PaymentCommission,
			ProcessedAt:   now,
		})
	}

	for _, payment := range payments {
		if err := uc.PaymentRepo.CreatePayment(payment); err != nil {
			slog.Error("failed to record payment", "transaction_id", transaction.ID, "type", payment.Type, "error", err.Error())
		}
	}

	return nil
}

func (uc *DefaultTransactionUsecase) refundBuyer(transaction *domain.Transaction) error {
	if err := uc.PaymentHandler.Refund(transaction.ID, transaction.BuyerID, transaction.Amount, transaction.Currency); err != nil {
		return domain.ErrRefundFailed
	}

	payment := &domain.Payment{
		ID:            uuid.NewString(),
		TransactionID: transaction.ID,
		UserID:        transaction.BuyerID,
		PayeeName:     transaction.BuyerName,
		PayeeEmail:    transaction.BuyerEmail,
		Amount:        transaction.Amount,
		Currency:      transaction.Currency,
		Type:          domain.PaymentRefund,
		ProcessedAt:   time.Now(),
	}
	if err := uc.PaymentRepo.CreatePayment(payment); err != nil {
		slog.Error("failed to record refund payment", "transaction_id", transaction.ID, "error", err.Error())
	}

	return nil
}

func (uc *DefaultTransactionUsecase) notifyStatusChange(transaction *domain.Transaction, from, target domain.TransactionStatus) {
	payload := map[string]any{
		"transaction_code": transaction.TransactionCode,
		"from":             string(from),
		"to":               string(target),
	}
	for _, recipient := range []string{transaction.BuyerID, transaction.SellerID} {
		if recipient == "" {
			continue
		}
		if err := uc.Notifier.Notify(recipient, domain.TemplateStatusChanged, payload); err != nil {
			slog.Error("status notification failed", "transaction_id", transaction.ID, "recipient", recipient, "error", err.Error())
		}
	}
}

func logPublishFailure(kind, id string, err error) {
	slog.Error("failed to publish kafka event", "kind", kind, "id", id, "error", err.Error())
}

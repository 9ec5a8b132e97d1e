package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
)

type DefaultDeletionUsecase struct {
	DeletionRepo domain.DeletionRepository
	Archive      domain.ArchiveStore
	Files        domain.FileStore
	AuditLogger  logger.AuditLogger
	Metrics      *metrics.EscrowMetrics
}

func NewDefaultDeletionUsecase(
	deletionRepo domain.DeletionRepository,
	archive domain.ArchiveStore,
	files domain.FileStore,
	auditLogger logger.AuditLogger,
	escrowMetrics *metrics.EscrowMetrics,
) *DefaultDeletionUsecase {
	return &DefaultDeletionUsecase{
		DeletionRepo: deletionRepo,
		Archive:      archive,
		Files:        files,
		AuditLogger:  auditLogger,
		Metrics:      escrowMetrics,
	}
}

var _ domain.DeletionUsecase = (*DefaultDeletionUsecase)(nil)

// deletionStep names one stage of the per-user erasure pipeline so a
// failure report can say exactly where a user got stuck.
type deletionStep struct {
	name string
	run  func(scope domain.DeletionScope, userID string) error
}

var deletionSteps = []deletionStep{
	{"anonymize_transactions", func(s domain.DeletionScope, id string) error {
		_, err := s.AnonymizeUserTransactions(id)
		return err
	}},
	{"anonymize_payments", func(s domain.DeletionScope, id string) error {
		_, err := s.AnonymizeUserPayments(id)
		return err
	}},
	{"delete_notifications", func(s domain.DeletionScope, id string) error {
		return s.DeleteUserNotifications(id)
	}},
	{"delete_messages", func(s domain.DeletionScope, id string) error {
		return s.DeleteUserMessages(id)
	}},
	{"delete_vehicles", func(s domain.DeletionScope, id string) error {
		return s.DeleteUserVehicles(id)
	}},
	{"anonymize_reviews", func(s domain.DeletionScope, id string) error {
		return s.AnonymizeUserReviews(id)
	}},
	{"delete_user", func(s domain.DeletionScope, id string) error {
		return s.DeleteUser(id)
	}},
}

// ProcessScheduledDeletions erases every account whose scheduled
// deletion time has passed. Users are processed independently: one
// failure is reported and the sweep moves on.
func (uc *DefaultDeletionUsecase) ProcessScheduledDeletions(ctx context.Context, now time.Time) (*domain.DeletionReport, error) {
	started := time.Now()
	report := &domain.DeletionReport{}

	users, err := uc.DeletionRepo.FindUsersDueForDeletion(now)
	if err != nil {
		return nil, fmt.Errorf("listing users due for deletion: %w", err)
	}

	for _, user := range users {
		report.Scanned++

		if err := uc.deleteUser(ctx, user, now); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, toDeletionError(user.ID, err))
			uc.Metrics.DeletionsProcessedTotal.WithLabelValues("failed").Inc()
			slog.Error("account deletion failed", "user_id", user.ID, "error", err.Error())
			continue
		}

		report.Deleted++
		uc.Metrics.DeletionsProcessedTotal.WithLabelValues("deleted").Inc()
	}

	uc.Metrics.SweepDuration.WithLabelValues("deletion").Observe(time.Since(started).Seconds())

	return report, nil
}

// stepError wraps a pipeline failure with the step it happened in.
type stepError struct {
	step string
	err  error
}

func (e *stepError) Error() string { return fmt.Sprintf("step %s: %v", e.step, e.err) }
func (e *stepError) Unwrap() error { return e.err }

func toDeletionError(userID string, err error) domain.DeletionError {
	if se, ok := err.(*stepError); ok {
		return domain.DeletionError{UserID: userID, Step: se.step, Err: se.err}
	}
	return domain.DeletionError{UserID: userID, Err: err}
}

func (uc *DefaultDeletionUsecase) deleteUser(ctx context.Context, user *domain.User, now time.Time) error {
	aggregates, err := uc.DeletionRepo.UserAggregates(user.ID)
	if err != nil {
		return &stepError{step: "aggregate", err: err}
	}

	snapshot := &domain.DeletionSnapshot{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		EmailHash:        hashEmail(user.Email),
		TransactionCount: aggregates.TransactionCount,
		PaymentCount:     aggregates.PaymentCount,
		TotalBought:      aggregates.TotalBought,
		TotalSold:        aggregates.TotalSold,
		DeletedAt:        now,
	}

	// The archive copy must exist before anything is destroyed. A user
	// whose snapshot cannot be written is not deleted.
	if err := uc.Archive.WriteSnapshot(snapshot); err != nil {
		return &stepError{step: "archive", err: err}
	}

	err = uc.DeletionRepo.InTransaction(ctx, func(scope domain.DeletionScope) error {
		if err := scope.SaveSnapshot(snapshot); err != nil {
			return &stepError{step: "snapshot", err: err}
		}
		for _, step := range deletionSteps {
			if err := step.run(scope, user.ID); err != nil {
				return &stepError{step: step.name, err: err}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// KYC artifacts go after the commit. A leftover file is re-deletable
	// and harmless; a half-deleted database row is not.
	uc.deleteVerificationFiles(user)

	if err := uc.AuditLogger.LogDeletion(ctx, logger.DeletionEvent{
		UserID:           user.ID,
		EmailHash:        snapshot.EmailHash,
		TransactionCount: snapshot.TransactionCount,
		Timestamp:        now,
	}); err != nil {
		slog.Error("failed to audit-log deletion", "user_id", user.ID, "error", err.Error())
	}

	return nil
}

func (uc *DefaultDeletionUsecase) deleteVerificationFiles(user *domain.User) {
	for _, path := range []string{user.IDDocumentPath, user.ProofOfAddressPath} {
		if path == "" {
			continue
		}
		if err := uc.Files.Delete(path); err != nil {
			slog.Error("failed to delete verification file", "user_id", user.ID, "path", path, "error", err.Error())
		}
	}
}

func hashEmail(email string) string {
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:])
}

package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// Tasks owns the periodic sweeps: deadline reminders with implicit
// acceptance, and scheduled account deletions. Each runs on its own
// ticker until the context is cancelled.
type Tasks struct {
	Transactions     domain.TransactionUsecase
	Deletions        domain.DeletionUsecase
	ReminderInterval time.Duration
	DeletionInterval time.Duration
}

func NewTasks(
	transactions domain.TransactionUsecase,
	deletions domain.DeletionUsecase,
	reminderInterval, deletionInterval time.Duration,
) *Tasks {
	return &Tasks{
		Transactions:     transactions,
		Deletions:        deletions,
		ReminderInterval: reminderInterval,
		DeletionInterval: deletionInterval,
	}
}

func (t *Tasks) Start(ctx context.Context) {
	go t.runReminderLoop(ctx)
	go t.runDeletionLoop(ctx)
}

func (t *Tasks) runReminderLoop(ctx context.Context) {
	ticker := time.NewTicker(t.ReminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := t.Transactions.RunReminderSweep(time.Now())
			if err != nil {
				slog.Error("reminder sweep failed", "error", err.Error())
				continue
			}
			if report.Scanned > 0 {
				slog.Info("reminder sweep finished",
					"scanned", report.Scanned,
					"reminders", report.RemindersSent,
					"auto_completed", report.AutoCompleted,
					"skipped", report.Skipped,
					"errors", len(report.Errors))
			}
		}
	}
}

func (t *Tasks) runDeletionLoop(ctx context.Context) {
	ticker := time.NewTicker(t.DeletionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := t.Deletions.ProcessScheduledDeletions(ctx, time.Now())
			if err != nil {
				slog.Error("deletion sweep failed", "error", err.Error())
				continue
			}
			if report.Scanned > 0 {
				slog.Info("deletion sweep finished",
					"scanned", report.Scanned,
					"deleted", report.Deleted,
					"failed", report.Failed)
			}
		}
	}
}

package usecase

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// RunReminderSweep is one tick of the deadline scheduler. Each
// transaction is handled independently: a failure on one lands in the
// report and the sweep keeps going.
func (uc *DefaultTransactionUsecase) RunReminderSweep(now time.Time) (*domain.SweepReport, error) {
	started := time.Now()
	report := &domain.SweepReport{}

	uc.sweepInspectionDeadlines(now, report)
	uc.sweepPaymentDeadlines(now, report)

	uc.Metrics.SweepDuration.WithLabelValues("reminder").Observe(time.Since(started).Seconds())

	if report.Failed() {
		slog.Warn("reminder sweep finished with errors",
			"scanned", report.Scanned,
			"reminders", report.RemindersSent,
			"auto_completed", report.AutoCompleted,
			"errors", len(report.Errors))
	}

	return report, nil
}

func (uc *DefaultTransactionUsecase) sweepInspectionDeadlines(now time.Time, report *domain.SweepReport) {
	transactions, err := uc.TransactionRepo.FindInspectionPeriodTransactions()
	if err != nil {
		report.Errors = append(report.Errors, domain.SweepError{Err: err})
		uc.Metrics.SweepErrorsTotal.WithLabelValues("inspection").Inc()
		return
	}

	for _, transaction := range transactions {
		report.Scanned++

		remaining, err := hoursRemaining(transaction.ID, transaction.InspectionDeadline, now)
		if err != nil {
			report.Errors = append(report.Errors, domain.SweepError{TransactionID: transaction.ID, Err: err})
			uc.Metrics.SweepErrorsTotal.WithLabelValues("inspection").Inc()
			continue
		}

		if remaining <= 0 {
			uc.autoComplete(transaction, report)
			continue
		}

		sent, err := uc.remindAtThresholds(transaction, domain.ReminderInspection, remaining,
			transaction.BuyerID, domain.TemplateInspectionReminder)
		if err != nil {
			report.Errors = append(report.Errors, domain.SweepError{TransactionID: transaction.ID, Err: err})
			uc.Metrics.SweepErrorsTotal.WithLabelValues("inspection").Inc()
			continue
		}
		if sent {
			report.RemindersSent++
		} else {
			report.Skipped++
		}
	}
}

// autoComplete applies the expiry transition known as implicit
// acceptance: an unanswered inspection window completes the deal.
func (uc *DefaultTransactionUsecase) autoComplete(transaction *domain.Transaction, report *domain.SweepReport) {
	_, err := uc.Transition(transaction.ID, domain.StatusCompleted, domain.SystemActor)
	if err != nil {
		// A dispute or manual completion racing the sweep wins; the
		// stale guard failure is not an error.
		var invalid *domain.InvalidTransitionError
		if errors.As(err, &invalid) {
			report.Skipped++
			return
		}
		report.Errors = append(report.Errors, domain.SweepError{TransactionID: transaction.ID, Err: err})
		uc.Metrics.SweepErrorsTotal.WithLabelValues("inspection").Inc()
		return
	}

	report.AutoCompleted++
	uc.Metrics.AutoCompletedTotal.Inc()

	if err := uc.Notifier.Notify(transaction.BuyerID, domain.TemplateAutoCompleted, map[string]any{
		"transaction_code": transaction.TransactionCode,
	}); err != nil {
		slog.Error("auto-complete notification failed", "transaction_id", transaction.ID, "error", err.Error())
	}
}

func (uc *DefaultTransactionUsecase) sweepPaymentDeadlines(now time.Time, report *domain.SweepReport) {
	transactions, err := uc.TransactionRepo.FindAwaitingPaymentTransactions()
	if err != nil {
		report.Errors = append(report.Errors, domain.SweepError{Err: err})
		uc.Metrics.SweepErrorsTotal.WithLabelValues("payment").Inc()
		return
	}

	for _, transaction := range transactions {
		report.Scanned++

		remaining, err := hoursRemaining(transaction.ID, transaction.PaymentDeadline, now)
		if err != nil {
			report.Errors = append(report.Errors, domain.SweepError{TransactionID: transaction.ID, Err: err})
			uc.Metrics.SweepErrorsTotal.WithLabelValues("payment").Inc()
			continue
		}

		// An expired payment window is surfaced to operators, never
		// auto-cancelled: the bank transfer may already be in flight.
		if remaining <= 0 {
			report.Skipped++
			continue
		}

		sent, err := uc.remindAtThresholds(transaction, domain.ReminderPayment, remaining,
			transaction.BuyerID, domain.TemplatePaymentReminder)
		if err != nil {
			report.Errors = append(report.Errors, domain.SweepError{TransactionID: transaction.ID, Err: err})
			uc.Metrics.SweepErrorsTotal.WithLabelValues("payment").Inc()
			continue
		}
		if sent {
			report.RemindersSent++
		} else {
			report.Skipped++
		}
	}
}

// remindAtThresholds emits at most one reminder per (transaction, kind,
// threshold). The dedupe claim lives in the database so overlapping
// sweep instances cannot double-send.
func (uc *DefaultTransactionUsecase) remindAtThresholds(
	transaction *domain.Transaction,
	kind domain.ReminderKind,
	remaining int,
	recipientID string,
	template domain.TemplateKind,
) (bool, error) {
	// Tightest crossed threshold wins: a transaction entering the sweep
	// at 5 hours left gets the 6-hour reminder, not the 24-hour one.
	for i := len(domain.ReminderThresholds) - 1; i >= 0; i-- {
		threshold := domain.ReminderThresholds[i]
		if remaining > threshold {
			continue
		}

		claimed, err := uc.ReminderLog.MarkSent(transaction.ID, kind, threshold)
		if err != nil {
			return false, err
		}
		if !claimed {
			// Tightest already-sent threshold covers all looser ones.
			return false, nil
		}

		if err := uc.Notifier.Notify(recipientID, template, map[string]any{
			"transaction_code": transaction.TransactionCode,
			"hours_remaining":  remaining,
			"threshold":        threshold,
		}); err != nil {
			slog.Error("reminder notification failed",
				"transaction_id", transaction.ID, "kind", kind, "error", err.Error())
		}

		uc.Metrics.RemindersSentTotal.WithLabelValues(string(kind), strconv.Itoa(threshold)).Inc()
		return true, nil
	}

	return false, nil
}

package domain

type ReminderKind string

const (
	ReminderInspection ReminderKind = "inspection_deadline"
	ReminderPayment    ReminderKind = "payment_deadline"
)

// ReminderThresholds are the hours-remaining marks at which exactly one
// reminder is emitted per transaction.
var ReminderThresholds = []int{24, 12, 6}

// ReminderLogRepository is the dedupe log behind the reminder sweep.
// MarkSent is an insert-if-absent on (transaction, kind, threshold):
// false means a prior tick already claimed the threshold.
type ReminderLogRepository interface {
	MarkSent(transactionID string, kind ReminderKind, thresholdHours int) (bool, error)
}

package models

import "time"

// ReminderLogModel makes the reminder sweep idempotent: the unique index
// lets the first tick claim a (transaction, kind, threshold) key and
// every later tick within the same hour hit a conflict instead.
type ReminderLogModel struct {
	ID             uint   `gorm:"primaryKey"`
	TransactionID  string `gorm:"type:uuid;uniqueIndex:idx_reminder_dedupe"`
	Kind           string `gorm:"uniqueIndex:idx_reminder_dedupe"`
	ThresholdHours int    `gorm:"uniqueIndex:idx_reminder_dedupe"`
	SentAt         time.Time
}

func (ReminderLogModel) TableName() string {
	return "reminder_logs"
}

package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// TransitionEvent is the durable audit record of one applied status
// transition: who moved what, from where to where, and when.
type TransitionEvent struct {
	ID            uint   `gorm:"primaryKey"`
	TransactionID string `gorm:"index"`
	FromStatus    string
	ToStatus      string
	ActorID       string
	ActorRole     string
	Timestamp     time.Time
}

// DeletionEvent records a completed compliance erasure. The email
// survives only as a hash.
type DeletionEvent struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           string `gorm:"index"`
	EmailHash        string
	TransactionCount int64
	Timestamp        time.Time
}

type AuditLogger interface {
	LogTransition(ctx context.Context, event TransitionEvent) error
	LogDeletion(ctx context.Context, event DeletionEvent) error
}

type PGAuditLogger struct {
	db *gorm.DB
}

func NewPGAuditLogger(db *gorm.DB) *PGAuditLogger {
	return &PGAuditLogger{db: db}
}

func (l *PGAuditLogger) LogTransition(ctx context.Context, event TransitionEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}

func (l *PGAuditLogger) LogDeletion(ctx context.Context, event DeletionEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}

package repository

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultReminderLogRepository struct {
	DB *gorm.DB
}

func NewDefaultReminderLogRepository(db *gorm.DB) *DefaultReminderLogRepository {
	return &DefaultReminderLogRepository{DB: db}
}

// MarkSent claims a (transaction, kind, threshold) key. The unique index
// plus ON CONFLICT DO NOTHING makes the first caller win and everyone
// else observe false, regardless of tick interval.
func (r *DefaultReminderLogRepository) MarkSent(
	transactionID string,
	kind domain.ReminderKind,
	thresholdHours int,
) (bool, error) {
	entry := models.ReminderLogModel{
		TransactionID:  transactionID,
		Kind:           string(kind),
		ThresholdHours: thresholdHours,
		SentAt:         time.Now(),
	}

	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

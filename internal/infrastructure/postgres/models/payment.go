package models

import "time"

type PaymentModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	TransactionID string `gorm:"type:uuid;index"`
	UserID        string `gorm:"type:uuid;index"`
	PayeeName     string
	PayeeEmail    string
	Amount        float64
	Currency      string
	Type          string
	Transaction   TransactionModel `gorm:"foreignKey:TransactionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	ProcessedAt   time.Time
	CreatedAt     time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}

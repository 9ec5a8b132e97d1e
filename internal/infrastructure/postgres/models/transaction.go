package models

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type TransactionModel struct {
	ID               string `gorm:"primaryKey;type:uuid"`
	TransactionCode  string `gorm:"uniqueIndex"`
	PaymentReference string `gorm:"uniqueIndex"`

	BuyerID   string `gorm:"type:uuid;index"`
	SellerID  string `gorm:"type:uuid;index"`
	DealerID  string
	VehicleID string `gorm:"index"`

	Amount           float64
	ServiceFee       float64
	DealerCommission float64
	Currency         string

	Status domain.TransactionStatus `gorm:"index:idx_status_inspection"`

	BuyerName    string
	BuyerEmail   string
	BuyerPhone   string
	BuyerAddress string
	SellerName   string
	SellerEmail  string
	SellerPhone  string

	PaymentSubmitted   bool
	PaymentProofURL    string
	PaymentDeadline    *time.Time `gorm:"index"`
	InspectionDeadline *time.Time `gorm:"index:idx_status_inspection"`

	ContractGeneratedAt *time.Time
	PaymentVerifiedAt   *time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time

	DisputeOpenedAt *time.Time
	Resolution      string
	ResolutionNotes string

	MetadataJSON string `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"index:idx_created_at"`
	UpdatedAt time.Time
}

func (TransactionModel) TableName() string {
	return "transactions"
}

package models

import (
	"time"
)

type DisputeModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	TransactionID   string `gorm:"type:uuid;uniqueIndex"`
	OpenedBy        string
	Reason          string
	Description     string
	EvidenceJSON    string `gorm:"type:jsonb"`
	Status          string `gorm:"index"`
	Resolution      string
	ResolutionNotes string
	ResolvedBy      string
	Transaction     TransactionModel `gorm:"foreignKey:TransactionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	OpenedAt        time.Time
	ResolvedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (DisputeModel) TableName() string {
	return "disputes"
}

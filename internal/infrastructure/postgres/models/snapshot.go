package models

import "time"

// DeletionSnapshotModel is write-once. Rows survive the user they
// describe for the legal retention window.
type DeletionSnapshotModel struct {
	ID               string `gorm:"primaryKey;type:uuid"`
	UserID           string `gorm:"type:uuid;index"`
	EmailHash        string `gorm:"index"`
	TransactionCount int64
	PaymentCount     int64
	TotalBought      float64
	TotalSold        float64
	DeletedAt        time.Time
	CreatedAt        time.Time
}

func (DeletionSnapshotModel) TableName() string {
	return "deletion_snapshots"
}

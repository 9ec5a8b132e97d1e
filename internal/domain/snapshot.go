package domain

import "time"

// DeletionSnapshot is the minimal write-once record preserved before a
// user is purged. It carries no plaintext identity: the email survives
// only as a SHA-256 hash. Retained independently of the live schema for
// the legal retention window.
type DeletionSnapshot struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	EmailHash        string    `json:"email_hash"`
	TransactionCount int64     `json:"transaction_count"`
	PaymentCount     int64     `json:"payment_count"`
	TotalBought      float64   `json:"total_bought"`
	TotalSold        float64   `json:"total_sold"`
	DeletedAt        time.Time `json:"deleted_at"`
}

// ArchiveStore persists snapshots to long-retention storage, distinct
// from the live file store.
type ArchiveStore interface {
	WriteSnapshot(snapshot *DeletionSnapshot) error
}

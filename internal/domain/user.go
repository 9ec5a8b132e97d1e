package domain

import (
	"context"
	"time"
)

// User is referenced, not owned, by the escrow core. The deletion engine
// is its only mutator here: once DeletionScheduledAt passes, the account
// is erased while its financial footprint stays behind, anonymized.
type User struct {
	ID                  string
	Name                string
	Email               string
	Phone               string
	Address             string
	IDDocumentPath      string
	ProofOfAddressPath  string
	DeletionScheduledAt *time.Time
	CreatedAt           time.Time
}

// Placeholder values written over personal fields during anonymization.
// Amounts, statuses and timestamps are never touched.
const (
	AnonymizedName    = "Deleted User"
	AnonymizedEmail   = "deleted@example.com"
	AnonymizedAddress = "[REDACTED]"
)

// DeletionScope is the per-user atomic boundary of the deletion engine.
// Every method runs inside one database transaction; if any step fails
// the whole user rolls back.
type DeletionScope interface {
	SaveSnapshot(snapshot *DeletionSnapshot) error
	AnonymizeUserTransactions(userID string) (int64, error)
	AnonymizeUserPayments(userID string) (int64, error)
	DeleteUserNotifications(userID string) error
	DeleteUserMessages(userID string) error
	DeleteUserVehicles(userID string) error
	AnonymizeUserReviews(userID string) error
	DeleteUser(userID string) error
}

type DeletionRepository interface {
	FindUsersDueForDeletion(now time.Time) ([]*User, error)
	UserAggregates(userID string) (*UserAggregates, error)
	InTransaction(ctx context.Context, fn func(scope DeletionScope) error) error
}

// DeletionReport is the run report of one deletion sweep. Per-user
// failures are collected, never fused into a single error.
type DeletionReport struct {
	Scanned int
	Deleted int
	Failed  int
	Errors  []DeletionError
}

type DeletionError struct {
	UserID string
	Step   string
	Err    error
}

func (r *DeletionReport) HasFailures() bool {
	return r.Failed > 0
}

type DeletionUsecase interface {
	ProcessScheduledDeletions(ctx context.Context, now time.Time) (*DeletionReport, error)
}

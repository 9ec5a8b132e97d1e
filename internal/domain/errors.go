package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDisputeNotFound     = errors.New("dispute not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateReminder   = errors.New("reminder already sent for this threshold")
	ErrReleaseFailed       = errors.New("payment release failed")
	ErrRefundFailed        = errors.New("payment refund failed")
)

// InvalidTransitionError reports a (status, target) pair missing from the
// adjacency table. The transaction is left unchanged.
type InvalidTransitionError struct {
	From TransactionStatus
	To   TransactionStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

// AuthorizationError reports an actor lacking rights for an operation.
// Nothing is mutated.
type AuthorizationError struct {
	ActorID string
	Action  string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("actor %s is not authorized to %s", e.ActorID, e.Action)
}

// DeadlineComputationError reports a missing or malformed deadline. The
// entity is skipped for the current sweep tick only.
type DeadlineComputationError struct {
	TransactionID string
	Reason        string
}

func (e *DeadlineComputationError) Error() string {
	return fmt.Sprintf("cannot compute deadline for transaction %s: %s", e.TransactionID, e.Reason)
}

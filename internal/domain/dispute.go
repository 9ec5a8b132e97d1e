package domain

import "time"

type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "open"
	DisputeResolved DisputeStatus = "resolved"
)

type DisputeReason string

const (
	ReasonVehicleMismatch    DisputeReason = "vehicle_mismatch"
	ReasonDamageNotDisclosed DisputeReason = "damage_not_disclosed"
	ReasonDocumentsMissing   DisputeReason = "documents_missing"
	ReasonSellerUnresponsive DisputeReason = "seller_unresponsive"
	ReasonOther              DisputeReason = "other"
)

// Dispute is the 1:1 companion of a disputed transaction. Opening one
// freezes the inspection deadline; resolving one drives the transaction
// into its terminal status.
type Dispute struct {
	ID              string
	TransactionID   string
	OpenedBy        string
	Reason          DisputeReason
	Description     string
	EvidenceURLs    []string
	Status          DisputeStatus
	Resolution      ResolutionType
	ResolutionNotes string
	ResolvedBy      string
	OpenedAt        time.Time
	ResolvedAt      *time.Time
}

// DisputeResolution carries the dispute-row update that commits
// together with the transaction's terminal transition.
type DisputeResolution struct {
	DisputeID  string
	Resolution ResolutionType
	Notes      string
	ResolvedBy string
	ResolvedAt time.Time
}

type DisputeRepository interface {
	CreateDispute(dispute *Dispute) error
	GetDisputeByID(disputeID string) (*Dispute, error)
	GetDisputeByTransactionID(transactionID string) (*Dispute, error)
	GetDisputes(page, limit int64, status string) ([]*Dispute, int64, error)
}

type OpenDisputeInput struct {
	TransactionID string
	Reason        DisputeReason
	Description   string
	EvidenceURLs  []string
	Actor         Actor
}

type DisputeUsecase interface {
	OpenDispute(input *OpenDisputeInput) (*Dispute, error)
	ResolveDispute(disputeID string, resolution ResolutionType, notes string, actor Actor) (*Dispute, error)
	GetDisputeByID(disputeID string) (*Dispute, error)
	GetDisputeByTransactionID(transactionID string) (*Dispute, error)
	GetDisputes(page, limit int64, status string) ([]*Dispute, int64, error)
}

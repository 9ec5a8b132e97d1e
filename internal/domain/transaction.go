package domain

import "time"

type TransactionStatus string

const (
	StatusDraft                TransactionStatus = "draft"
	StatusPending              TransactionStatus = "pending"
	StatusContractGenerated    TransactionStatus = "contract_generated"
	StatusContractSigned       TransactionStatus = "contract_signed"
	StatusAwaitingBankTransfer TransactionStatus = "awaiting_bank_transfer"
	StatusPaymentSubmitted     TransactionStatus = "payment_submitted"
	StatusPaymentVerified      TransactionStatus = "payment_verified"
	StatusInspectionPeriod     TransactionStatus = "inspection_period"
	StatusCompleted            TransactionStatus = "completed"
	StatusDisputed             TransactionStatus = "disputed"
	StatusCancelled            TransactionStatus = "cancelled"
)

type ResolutionType string

const (
	ResolutionRefundBuyer     ResolutionType = "refund_buyer"
	ResolutionReleaseToSeller ResolutionType = "release_to_seller"
)

// Transaction is the escrow deal between a buyer and a seller over one
// vehicle. Status is the single source of truth for lifecycle position;
// the timestamps are stamped as transition side effects and are never
// used to infer state.
type Transaction struct {
	ID              string
	TransactionCode string
	// PaymentReference is quoted by the buyer in the manual bank transfer
	// and used for reconciliation.
	PaymentReference string

	BuyerID   string
	SellerID  string
	DealerID  string
	VehicleID string

	Amount           float64
	ServiceFee       float64
	DealerCommission float64
	Currency         string

	Status TransactionStatus

	// Denormalized party contact fields. These are the anonymization
	// targets of the compliance deletion engine.
	BuyerName    string
	BuyerEmail   string
	BuyerPhone   string
	BuyerAddress string
	SellerName   string
	SellerEmail  string
	SellerPhone  string

	PaymentSubmitted   bool
	PaymentProofURL    string
	PaymentDeadline    *time.Time
	InspectionDeadline *time.Time

	ContractGeneratedAt *time.Time
	PaymentVerifiedAt   *time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time

	DisputeOpenedAt *time.Time
	Resolution      ResolutionType
	ResolutionNotes string

	// MetadataJSON captures device/IP info at creation. Write-once.
	MetadataJSON string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserAggregates struct {
	TransactionCount int64
	PaymentCount     int64
	TotalBought      float64
	TotalSold        float64
}

type TransactionRepository interface {
	CreateTransaction(transaction *Transaction) error
	GetTransactionByID(transactionID string) (*Transaction, error)
	GetTransactionByCode(code string) (*Transaction, error)
	// ProcessStatusTransition atomically re-reads the row, re-checks the
	// transition guard against the current status and applies mutate
	// together with the status write. A completed->completed request is a
	// no-op success.
	ProcessStatusTransition(transactionID string, target TransactionStatus, mutate func(*Transaction) error) (*Transaction, error)
	// ProcessDisputeResolution runs the same guarded transition and, in
	// the same database transaction, flips the open dispute row to
	// resolved. Either both rows commit or neither does; a dispute that
	// is no longer open aborts the write with ErrDisputeNotFound.
	ProcessDisputeResolution(transactionID string, target TransactionStatus, resolution DisputeResolution, mutate func(*Transaction) error) (*Transaction, error)
	FindInspectionPeriodTransactions() ([]*Transaction, error)
	FindAwaitingPaymentTransactions() ([]*Transaction, error)
}

type TransactionUsecase interface {
	CreateTransaction(input *CreateTransactionInput) (*Transaction, error)
	Transition(transactionID string, target TransactionStatus, actor Actor) (*Transaction, error)
	// ResolveTransaction applies the terminal transition a dispute
	// resolution decided. The resolution fields land on the transaction
	// and the dispute row flips to resolved in one atomic write.
	ResolveTransaction(transactionID, disputeID string, resolution ResolutionType, notes string, actor Actor) (*Transaction, error)
	GetTransactionByID(transactionID string) (*Transaction, error)
	GetTransactionByCode(code string) (*Transaction, error)
	RunReminderSweep(now time.Time) (*SweepReport, error)
}

type CreateTransactionInput struct {
	BuyerID      string
	SellerID     string
	DealerID     string
	VehicleID    string
	Amount       float64
	Currency     string
	BuyerName    string
	BuyerEmail   string
	BuyerPhone   string
	BuyerAddress string
	SellerName   string
	SellerEmail  string
	SellerPhone  string
	MetadataJSON string
}

// SweepReport aggregates the outcome of one reminder/auto-transition
// sweep. A non-empty Errors slice means some transactions failed while
// the rest were still processed.
type SweepReport struct {
	Scanned       int
	RemindersSent int
	AutoCompleted int
	Skipped       int
	Errors        []SweepError
}

type SweepError struct {
	TransactionID string
	Err           error
}

func (r *SweepReport) Failed() bool {
	return len(r.Errors) > 0
}

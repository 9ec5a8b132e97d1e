package domain

import "time"

type PaymentType string

const (
	PaymentRelease    PaymentType = "release"
	PaymentRefund     PaymentType = "refund"
	PaymentServiceFee PaymentType = "service_fee"
	PaymentCommission PaymentType = "dealer_commission"
)

// Payment is the ledger record of money moved out of escrow. Rows are
// never deleted; the deletion engine anonymizes the payee fields only.
type Payment struct {
	ID            string
	TransactionID string
	UserID        string
	PayeeName     string
	PayeeEmail    string
	Amount        float64
	Currency      string
	Type          PaymentType
	ProcessedAt   time.Time
}

type PaymentRepository interface {
	CreatePayment(payment *Payment) error
	GetPaymentsByTransactionID(transactionID string) ([]*Payment, error)
}

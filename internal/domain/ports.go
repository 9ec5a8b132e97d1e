package domain

import "time"

type TemplateKind string

const (
	TemplateInspectionReminder TemplateKind = "inspection_reminder"
	TemplatePaymentReminder    TemplateKind = "payment_reminder"
	TemplateAutoCompleted      TemplateKind = "auto_completed"
	TemplateStatusChanged      TemplateKind = "status_changed"
	TemplateDisputeOpened      TemplateKind = "dispute_opened"
	TemplateDisputeResolved    TemplateKind = "dispute_resolved"
)

// Notifier is the outbound notification collaborator. Delivery is
// best-effort: errors are logged by callers and never fail a transition.
type Notifier interface {
	Notify(recipientID string, kind TemplateKind, payload map[string]any) error
}

// PaymentHandler is the payment-service collaborator releasing or
// reversing escrowed funds. Bank transfers themselves are manual; these
// calls only instruct the payment desk.
type PaymentHandler interface {
	Release(transactionID, sellerID string, amount float64, currency string) error
	Refund(transactionID, buyerID string, amount float64, currency string) error
}

// FileStore deletes user-uploaded artifacts by logical path.
type FileStore interface {
	Delete(path string) error
	DeleteDir(dir string) error
}

type TransactionEvent struct {
	TransactionID   string            `json:"transaction_id"`
	TransactionCode string            `json:"transaction_code"`
	Status          TransactionStatus `json:"status"`
	PreviousStatus  TransactionStatus `json:"previous_status"`
	ActorID         string            `json:"actor_id"`
	Amount          float64           `json:"amount"`
	Currency        string            `json:"currency"`
	OccurredAt      time.Time         `json:"occurred_at"`
}

type DisputeEvent struct {
	DisputeID     string         `json:"dispute_id"`
	TransactionID string         `json:"transaction_id"`
	Reason        string         `json:"reason"`
	Status        string         `json:"status"`
	Resolution    ResolutionType `json:"resolution,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

type EventPublisher interface {
	PublishTransaction(event TransactionEvent) error
	PublishDispute(event DisputeEvent) error
}

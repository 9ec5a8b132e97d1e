package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
)

// Metric vectors register globally, so the whole test binary shares one
// instance.
var testMetrics = metrics.NewEscrowMetrics()

type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*domain.Transaction
	disputes     *fakeDisputeRepo
	failWith     error

	// staleInspectionScan replays a scan snapshot taken before a
	// concurrent writer moved the rows.
	staleInspectionScan []*domain.Transaction
}

func newFakeTransactionRepo(transactions ...*domain.Transaction) *fakeTransactionRepo {
	repo := &fakeTransactionRepo{transactions: make(map[string]*domain.Transaction)}
	for _, transaction := range transactions {
		repo.transactions[transaction.ID] = transaction
	}
	return repo
}

func (r *fakeTransactionRepo) CreateTransaction(transaction *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	copied := *transaction
	r.transactions[transaction.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) GetTransactionByID(transactionID string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[transactionID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	copied := *transaction
	return &copied, nil
}

func (r *fakeTransactionRepo) GetTransactionByCode(code string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, transaction := range r.transactions {
		if transaction.TransactionCode == code {
			copied := *transaction
			return &copied, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) ProcessStatusTransition(
	transactionID string,
	target domain.TransactionStatus,
	mutate func(*domain.Transaction) error,
) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}

	transaction, ok := r.transactions[transactionID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}

	if transaction.Status == domain.StatusCompleted && target == domain.StatusCompleted {
		copied := *transaction
		return &copied, nil
	}

	if !domain.CanTransition(transaction.Status, target) {
		return nil, &domain.InvalidTransitionError{From: transaction.Status, To: target}
	}

	working := *transaction
	if mutate != nil {
		if err := mutate(&working); err != nil {
			return nil, err
		}
	}
	working.Status = target
	working.UpdatedAt = time.Now()
	r.transactions[transactionID] = &working

	copied := working
	return &copied, nil
}

func (r *fakeTransactionRepo) ProcessDisputeResolution(
	transactionID string,
	target domain.TransactionStatus,
	resolution domain.DisputeResolution,
	mutate func(*domain.Transaction) error,
) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}

	transaction, ok := r.transactions[transactionID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	if !domain.CanTransition(transaction.Status, target) {
		return nil, &domain.InvalidTransitionError{From: transaction.Status, To: target}
	}

	working := *transaction
	if mutate != nil {
		if err := mutate(&working); err != nil {
			return nil, err
		}
	}
	working.Status = target
	working.UpdatedAt = time.Now()

	// The dispute row commits or rolls back with the transaction write.
	if err := r.disputes.claimResolution(resolution); err != nil {
		return nil, err
	}
	r.transactions[transactionID] = &working

	copied := working
	return &copied, nil
}

func (r *fakeTransactionRepo) FindInspectionPeriodTransactions() ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	if r.staleInspectionScan != nil {
		out := make([]*domain.Transaction, len(r.staleInspectionScan))
		for i, transaction := range r.staleInspectionScan {
			copied := *transaction
			out[i] = &copied
		}
		return out, nil
	}
	var out []*domain.Transaction
	for _, transaction := range r.transactions {
		if transaction.Status == domain.StatusInspectionPeriod {
			copied := *transaction
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindAwaitingPaymentTransactions() ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []*domain.Transaction
	for _, transaction := range r.transactions {
		if (transaction.Status == domain.StatusContractSigned ||
			transaction.Status == domain.StatusAwaitingBankTransfer) &&
			transaction.PaymentDeadline != nil {
			copied := *transaction
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeReminderLog struct {
	mu       sync.Mutex
	claims   map[string]bool
	failWith error
}

func newFakeReminderLog() *fakeReminderLog {
	return &fakeReminderLog{claims: make(map[string]bool)}
}

func (l *fakeReminderLog) MarkSent(transactionID string, kind domain.ReminderKind, thresholdHours int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failWith != nil {
		return false, l.failWith
	}
	key := fmt.Sprintf("%s|%s|%d", transactionID, kind, thresholdHours)
	if l.claims[key] {
		return false, nil
	}
	l.claims[key] = true
	return true, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []*domain.Payment
}

func (r *fakePaymentRepo) CreatePayment(payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *payment
	r.payments = append(r.payments, &copied)
	return nil
}

func (r *fakePaymentRepo) GetPaymentsByTransactionID(transactionID string) ([]*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Payment
	for _, payment := range r.payments {
		if payment.TransactionID == transactionID {
			out = append(out, payment)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) byType(paymentType domain.PaymentType) []*domain.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Payment
	for _, payment := range r.payments {
		if payment.Type == paymentType {
			out = append(out, payment)
		}
	}
	return out
}

type paymentCall struct {
	TransactionID string
	Party         string
	Amount        float64
	Currency      string
}

type fakePaymentHandler struct {
	mu       sync.Mutex
	releases []paymentCall
	refunds  []paymentCall
	failWith error
}

func (h *fakePaymentHandler) Release(transactionID, sellerID string, amount float64, currency string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failWith != nil {
		return h.failWith
	}
	h.releases = append(h.releases, paymentCall{transactionID, sellerID, amount, currency})
	return nil
}

func (h *fakePaymentHandler) Refund(transactionID, buyerID string, amount float64, currency string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failWith != nil {
		return h.failWith
	}
	h.refunds = append(h.refunds, paymentCall{transactionID, buyerID, amount, currency})
	return nil
}

type notification struct {
	RecipientID string
	Kind        domain.TemplateKind
	Payload     map[string]any
}

type fakeNotifier struct {
	mu            sync.Mutex
	notifications []notification
	failWith      error
}

func (n *fakeNotifier) Notify(recipientID string, kind domain.TemplateKind, payload map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failWith != nil {
		return n.failWith
	}
	n.notifications = append(n.notifications, notification{recipientID, kind, payload})
	return nil
}

func (n *fakeNotifier) byKind(kind domain.TemplateKind) []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notification
	for _, sent := range n.notifications {
		if sent.Kind == kind {
			out = append(out, sent)
		}
	}
	return out
}

// fakePublisher is race-safe because usecases publish on goroutines.
type fakePublisher struct {
	mu                sync.Mutex
	transactionEvents []domain.TransactionEvent
	disputeEvents     []domain.DisputeEvent
}

func (p *fakePublisher) PublishTransaction(event domain.TransactionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transactionEvents = append(p.transactionEvents, event)
	return nil
}

func (p *fakePublisher) PublishDispute(event domain.DisputeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disputeEvents = append(p.disputeEvents, event)
	return nil
}

type fakeAuditLogger struct {
	mu          sync.Mutex
	transitions []logger.TransitionEvent
	deletions   []logger.DeletionEvent
}

func (l *fakeAuditLogger) LogTransition(ctx context.Context, event logger.TransitionEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transitions = append(l.transitions, event)
	return nil
}

func (l *fakeAuditLogger) LogDeletion(ctx context.Context, event logger.DeletionEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.deletions = append(l.deletions, event)
	return nil
}

type transactionFixture struct {
	repo     *fakeTransactionRepo
	reminder *fakeReminderLog
	payments *fakePaymentRepo
	handler  *fakePaymentHandler
	notifier *fakeNotifier
	pub      *fakePublisher
	audit    *fakeAuditLogger
	uc       *DefaultTransactionUsecase
}

func newTransactionFixture(transactions ...*domain.Transaction) *transactionFixture {
	f := &transactionFixture{
		repo:     newFakeTransactionRepo(transactions...),
		reminder: newFakeReminderLog(),
		payments: &fakePaymentRepo{},
		handler:  &fakePaymentHandler{},
		notifier: &fakeNotifier{},
		pub:      &fakePublisher{},
		audit:    &fakeAuditLogger{},
	}
	f.uc = NewDefaultTransactionUsecase(
		f.repo,
		f.reminder,
		f.payments,
		f.handler,
		f.notifier,
		f.pub,
		f.audit,
		testMetrics,
		EscrowPolicy{
			InspectionWindow: 72 * time.Hour,
			PaymentWindow:    168 * time.Hour,
			ServiceFeeRate:   0.025,
			ServiceFeeMin:    25,
			DealerCommission: 0.03,
		},
	)
	return f
}

package usecase

import (
	"fmt"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// EscrowPolicy carries the commercial knobs of the escrow flow.
type EscrowPolicy struct {
	InspectionWindow time.Duration
	PaymentWindow    time.Duration
	ServiceFeeRate   float64
	ServiceFeeMin    float64
	DealerCommission float64
}

type DefaultTransactionUsecase struct {
	TransactionRepo domain.TransactionRepository
	ReminderLog     domain.ReminderLogRepository
	PaymentRepo     domain.PaymentRepository
	PaymentHandler  domain.PaymentHandler
	Notifier        domain.Notifier
	Publisher       domain.EventPublisher
	AuditLogger     logger.AuditLogger
	Metrics         *metrics.EscrowMetrics
	Policy          EscrowPolicy
}

func NewDefaultTransactionUsecase(
	transactionRepo domain.TransactionRepository,
	reminderLog domain.ReminderLogRepository,
	paymentRepo domain.PaymentRepository,
	paymentHandler domain.PaymentHandler,
	notifier domain.Notifier,
	publisher domain.EventPublisher,
	auditLogger logger.AuditLogger,
	escrowMetrics *metrics.EscrowMetrics,
	policy EscrowPolicy,
) *DefaultTransactionUsecase {
	return &DefaultTransactionUsecase{
		TransactionRepo: transactionRepo,
		ReminderLog:     reminderLog,
		PaymentRepo:     paymentRepo,
		PaymentHandler:  paymentHandler,
		Notifier:        notifier,
		Publisher:       publisher,
		AuditLogger:     auditLogger,
		Metrics:         escrowMetrics,
		Policy:          policy,
	}
}

var _ domain.TransactionUsecase = (*DefaultTransactionUsecase)(nil)

// CreateTransaction is the entry the checkout flow calls. The
// transaction is born pending with generated codes, computed
// commissions and a running payment deadline.
func (uc *DefaultTransactionUsecase) CreateTransaction(input *domain.CreateTransactionInput) (*domain.Transaction, error) {
	code, err := generateTransactionCode()
	if err != nil {
		return nil, fmt.Errorf("generating transaction code: %w", err)
	}
	reference, err := generatePaymentReference()
	if err != nil {
		return nil, fmt.Errorf("generating payment reference: %w", err)
	}

	serviceFee := uc.Policy.ServiceFeeRate * input.Amount
	if serviceFee < uc.Policy.ServiceFeeMin {
		serviceFee = uc.Policy.ServiceFeeMin
	}
	var dealerCommission float64
	if input.DealerID != "" {
		dealerCommission = uc.Policy.DealerCommission * input.Amount
	}

	now := time.Now()
	paymentDeadline := now.Add(uc.Policy.PaymentWindow)

	transaction := &domain.Transaction{
		ID:               uuid.NewString(),
		TransactionCode:  code,
		PaymentReference: reference,
		BuyerID:          input.BuyerID,
		SellerID:         input.SellerID,
		DealerID:         input.DealerID,
		VehicleID:        input.VehicleID,
		Amount:           input.Amount,
		ServiceFee:       serviceFee,
		DealerCommission: dealerCommission,
		Currency:         input.Currency,
		Status:           domain.StatusPending,
		BuyerName:        input.BuyerName,
		BuyerEmail:       input.BuyerEmail,
		BuyerPhone:       input.BuyerPhone,
		BuyerAddress:     input.BuyerAddress,
		SellerName:       input.SellerName,
		SellerEmail:      input.SellerEmail,
		SellerPhone:      input.SellerPhone,
		PaymentDeadline:  &paymentDeadline,
		MetadataJSON:     input.MetadataJSON,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.TransactionRepo.CreateTransaction(transaction); err != nil {
		return nil, err
	}

	uc.publishTransactionEvent(transaction, "", domain.SystemActor)

	return transaction, nil
}

func (uc *DefaultTransactionUsecase) GetTransactionByID(transactionID string) (*domain.Transaction, error) {
	return uc.TransactionRepo.GetTransactionByID(transactionID)
}

func (uc *DefaultTransactionUsecase) GetTransactionByCode(code string) (*domain.Transaction, error) {
	return uc.TransactionRepo.GetTransactionByCode(code)
}

func (uc *DefaultTransactionUsecase) publishTransactionEvent(transaction *domain.Transaction, previous domain.TransactionStatus, actor domain.Actor) {
	go func(event domain.TransactionEvent) {
		if err := uc.Publisher.PublishTransaction(event); err != nil {
			logPublishFailure("transaction", transaction.ID, err)
		}
	}(domain.TransactionEvent{
		TransactionID:   transaction.ID,
		TransactionCode: transaction.TransactionCode,
		Status:          transaction.Status,
		PreviousStatus:  previous,
		ActorID:         actor.ID,
		Amount:          transaction.Amount,
		Currency:        transaction.Currency,
		OccurredAt:      time.Now(),
	})
}

func generateTransactionCode() (string, error) {
	gen, err := nanoid.CustomASCII("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", 6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SP-TXN-%d-%s", time.Now().Year(), gen()), nil
}

func generatePaymentReference() (string, error) {
	gen, err := nanoid.CustomASCII("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", 12)
	if err != nil {
		return "", err
	}
	return "SP-REF-" + gen(), nil
}

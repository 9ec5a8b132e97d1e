package repository

import (
	"errors"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) CreateTransaction(transaction *domain.Transaction) error {
	transactionModel := mappers.ToGORMTransaction(transaction)
	if err := r.DB.Create(transactionModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultTransactionRepository) GetTransactionByID(transactionID string) (*domain.Transaction, error) {
	var transaction models.TransactionModel
	if err := r.DB.First(&transaction, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&transaction), nil
}

func (r *DefaultTransactionRepository) GetTransactionByCode(code string) (*domain.Transaction, error) {
	var transaction models.TransactionModel
	if err := r.DB.First(&transaction, "transaction_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&transaction), nil
}

// ProcessStatusTransition is the unit of mutual exclusion for a
// transaction row. The row is locked, the guard re-checked against the
// status actually stored, and the status write plus the transition's
// side-effect stamps commit together. Two racing transitions therefore
// serialize: the loser sees the winner's status and fails the guard.
func (r *DefaultTransactionRepository) ProcessStatusTransition(
	transactionID string,
	target domain.TransactionStatus,
	mutate func(*domain.Transaction) error,
) (*domain.Transaction, error) {
	var result *domain.Transaction

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		transaction, err := transitionLocked(tx, transactionID, target, mutate)
		if err != nil {
			return err
		}
		result = transaction
		return nil
	})

	return result, err
}

// ProcessDisputeResolution is the dispute-close write: the terminal
// transition and the dispute-row flip commit in one database
// transaction, so a failure on either side leaves both rows untouched
// and the resolution can be retried. Racing resolutions serialize on
// the transaction row lock.
func (r *DefaultTransactionRepository) ProcessDisputeResolution(
	transactionID string,
	target domain.TransactionStatus,
	resolution domain.DisputeResolution,
	mutate func(*domain.Transaction) error,
) (*domain.Transaction, error) {
	var result *domain.Transaction

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		transaction, err := transitionLocked(tx, transactionID, target, mutate)
		if err != nil {
			return err
		}

		res := tx.Model(&models.DisputeModel{}).
			Where("id = ? AND status = ?", resolution.DisputeID, string(domain.DisputeOpen)).
			Updates(map[string]any{
				"status":           string(domain.DisputeResolved),
				"resolution":       string(resolution.Resolution),
				"resolution_notes": resolution.Notes,
				"resolved_by":      resolution.ResolvedBy,
				"resolved_at":      resolution.ResolvedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrDisputeNotFound
		}

		result = transaction
		return nil
	})

	return result, err
}

func transitionLocked(
	tx *gorm.DB,
	transactionID string,
	target domain.TransactionStatus,
	mutate func(*domain.Transaction) error,
) (*domain.Transaction, error) {
	var model models.TransactionModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	transaction := mappers.ToDomainTransaction(&model)

	// Duplicate completion requests are no-op successes so that
	// overlapping sweeps stay idempotent.
	if transaction.Status == domain.StatusCompleted && target == domain.StatusCompleted {
		return transaction, nil
	}

	if !domain.CanTransition(transaction.Status, target) {
		return nil, &domain.InvalidTransitionError{From: transaction.Status, To: target}
	}

	// mutate observes the pre-transition status; the status write
	// itself happens here so stamps and status commit together.
	if mutate != nil {
		if err := mutate(transaction); err != nil {
			return nil, err
		}
	}
	transaction.Status = target
	transaction.UpdatedAt = time.Now()

	if err := tx.Save(mappers.ToGORMTransaction(transaction)).Error; err != nil {
		return nil, err
	}

	return transaction, nil
}

func (r *DefaultTransactionRepository) FindInspectionPeriodTransactions() ([]*domain.Transaction, error) {
	var transactionModels []models.TransactionModel
	if err := r.DB.
		Where("status = ?", domain.StatusInspectionPeriod).
		Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, len(transactionModels))
	for i, transactionModel := range transactionModels {
		transactions[i] = mappers.ToDomainTransaction(&transactionModel)
	}

	return transactions, nil
}

func (r *DefaultTransactionRepository) FindAwaitingPaymentTransactions() ([]*domain.Transaction, error) {
	var transactionModels []models.TransactionModel
	if err := r.DB.
		Where("status IN ?", []domain.TransactionStatus{
			domain.StatusContractSigned,
			domain.StatusAwaitingBankTransfer,
		}).
		Where("payment_deadline IS NOT NULL").
		Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, len(transactionModels))
	for i, transactionModel := range transactionModels {
		transactions[i] = mappers.ToDomainTransaction(&transactionModel)
	}

	return transactions, nil
}

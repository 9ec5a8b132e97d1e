package repository

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{DB: db}
}

func (r *DefaultPaymentRepository) CreatePayment(payment *domain.Payment) error {
	return r.DB.Create(mappers.ToGORMPayment(payment)).Error
}

func (r *DefaultPaymentRepository) GetPaymentsByTransactionID(transactionID string) ([]*domain.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.DB.
		Where("transaction_id = ?", transactionID).
		Order("processed_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, len(paymentModels))
	for i, paymentModel := range paymentModels {
		payments[i] = mappers.ToDomainPayment(&paymentModel)
	}

	return payments, nil
}

package mappers

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainUser(model *models.UserModel) *domain.User {
	return &domain.User{
		ID:                  model.ID,
		Name:                model.Name,
		Email:               model.Email,
		Phone:               model.Phone,
		Address:             model.Address,
		IDDocumentPath:      model.IDDocumentPath,
		ProofOfAddressPath:  model.ProofOfAddressPath,
		DeletionScheduledAt: model.DeletionScheduledAt,
		CreatedAt:           model.CreatedAt,
	}
}

func ToGORMSnapshot(snapshot *domain.DeletionSnapshot) *models.DeletionSnapshotModel {
	return &models.DeletionSnapshotModel{
		ID:               snapshot.ID,
		UserID:           snapshot.UserID,
		EmailHash:        snapshot.EmailHash,
		TransactionCount: snapshot.TransactionCount,
		PaymentCount:     snapshot.PaymentCount,
		TotalBought:      snapshot.TotalBought,
		TotalSold:        snapshot.TotalSold,
		DeletedAt:        snapshot.DeletedAt,
	}
}

func ToGORMPayment(payment *domain.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:            payment.ID,
		TransactionID: payment.TransactionID,
		UserID:        payment.UserID,
		PayeeName:     payment.PayeeName,
		PayeeEmail:    payment.PayeeEmail,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		Type:          string(payment.Type),
		ProcessedAt:   payment.ProcessedAt,
	}
}

func ToDomainPayment(model *models.PaymentModel) *domain.Payment {
	return &domain.Payment{
		ID:            model.ID,
		TransactionID: model.TransactionID,
		UserID:        model.UserID,
		PayeeName:     model.PayeeName,
		PayeeEmail:    model.PayeeEmail,
		Amount:        model.Amount,
		Currency:      model.Currency,
		Type:          domain.PaymentType(model.Type),
		ProcessedAt:   model.ProcessedAt,
	}
}

package mappers

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMTransaction(transaction *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:                  transaction.ID,
		TransactionCode:     transaction.TransactionCode,
		PaymentReference:    transaction.PaymentReference,
		BuyerID:             transaction.BuyerID,
		SellerID:            transaction.SellerID,
		DealerID:            transaction.DealerID,
		VehicleID:           transaction.VehicleID,
		Amount:              transaction.Amount,
		ServiceFee:          transaction.ServiceFee,
		DealerCommission:    transaction.DealerCommission,
		Currency:            transaction.Currency,
		Status:              transaction.Status,
		BuyerName:           transaction.BuyerName,
		BuyerEmail:          transaction.BuyerEmail,
		BuyerPhone:          transaction.BuyerPhone,
		BuyerAddress:        transaction.BuyerAddress,
		SellerName:          transaction.SellerName,
		SellerEmail:         transaction.SellerEmail,
		SellerPhone:         transaction.SellerPhone,
		PaymentSubmitted:    transaction.PaymentSubmitted,
		PaymentProofURL:     transaction.PaymentProofURL,
		PaymentDeadline:     transaction.PaymentDeadline,
		InspectionDeadline:  transaction.InspectionDeadline,
		ContractGeneratedAt: transaction.ContractGeneratedAt,
		PaymentVerifiedAt:   transaction.PaymentVerifiedAt,
		CompletedAt:         transaction.CompletedAt,
		CancelledAt:         transaction.CancelledAt,
		DisputeOpenedAt:     transaction.DisputeOpenedAt,
		Resolution:          string(transaction.Resolution),
		ResolutionNotes:     transaction.ResolutionNotes,
		MetadataJSON:        transaction.MetadataJSON,
		CreatedAt:           transaction.CreatedAt,
		UpdatedAt:           transaction.UpdatedAt,
	}
}

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:                  model.ID,
		TransactionCode:     model.TransactionCode,
		PaymentReference:    model.PaymentReference,
		BuyerID:             model.BuyerID,
		SellerID:            model.SellerID,
		DealerID:            model.DealerID,
		VehicleID:           model.VehicleID,
		Amount:              model.Amount,
		ServiceFee:          model.ServiceFee,
		DealerCommission:    model.DealerCommission,
		Currency:            model.Currency,
		Status:              model.Status,
		BuyerName:           model.BuyerName,
		BuyerEmail:          model.BuyerEmail,
		BuyerPhone:          model.BuyerPhone,
		BuyerAddress:        model.BuyerAddress,
		SellerName:          model.SellerName,
		SellerEmail:         model.SellerEmail,
		SellerPhone:         model.SellerPhone,
		PaymentSubmitted:    model.PaymentSubmitted,
		PaymentProofURL:     model.PaymentProofURL,
		PaymentDeadline:     model.PaymentDeadline,
		InspectionDeadline:  model.InspectionDeadline,
		ContractGeneratedAt: model.ContractGeneratedAt,
		PaymentVerifiedAt:   model.PaymentVerifiedAt,
		CompletedAt:         model.CompletedAt,
		CancelledAt:         model.CancelledAt,
		DisputeOpenedAt:     model.DisputeOpenedAt,
		Resolution:          domain.ResolutionType(model.Resolution),
		ResolutionNotes:     model.ResolutionNotes,
		MetadataJSON:        model.MetadataJSON,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

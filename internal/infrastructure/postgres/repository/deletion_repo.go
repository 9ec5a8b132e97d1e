package repository

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDeletionRepository struct {
	DB *gorm.DB
}

func NewDefaultDeletionRepository(db *gorm.DB) *DefaultDeletionRepository {
	return &DefaultDeletionRepository{DB: db}
}

func (r *DefaultDeletionRepository) FindUsersDueForDeletion(now time.Time) ([]*domain.User, error) {
	var userModels []models.UserModel
	if err := r.DB.
		Where("deletion_scheduled_at IS NOT NULL").
		Where("deletion_scheduled_at <= ?", now).
		Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*domain.User, len(userModels))
	for i, userModel := range userModels {
		users[i] = mappers.ToDomainUser(&userModel)
	}

	return users, nil
}

func (r *DefaultDeletionRepository) UserAggregates(userID string) (*domain.UserAggregates, error) {
	var agg domain.UserAggregates

	if err := r.DB.Model(&models.TransactionModel{}).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Count(&agg.TransactionCount).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Model(&models.PaymentModel{}).
		Where("user_id = ?", userID).
		Count(&agg.PaymentCount).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Model(&models.TransactionModel{}).
		Where("buyer_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&agg.TotalBought).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Model(&models.TransactionModel{}).
		Where("seller_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&agg.TotalSold).Error; err != nil {
		return nil, err
	}

	return &agg, nil
}

// InTransaction runs the per-user erasure pipeline inside one database
// transaction. Any step error rolls the whole user back.
func (r *DefaultDeletionRepository) InTransaction(ctx context.Context, fn func(scope domain.DeletionScope) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&deletionScope{tx: tx})
	})
}

type deletionScope struct {
	tx *gorm.DB
}

func (s *deletionScope) SaveSnapshot(snapshot *domain.DeletionSnapshot) error {
	return s.tx.Create(mappers.ToGORMSnapshot(snapshot)).Error
}

func (s *deletionScope) AnonymizeUserTransactions(userID string) (int64, error) {
	asBuyer := s.tx.Model(&models.TransactionModel{}).
		Where("buyer_id = ?", userID).
		Updates(map[string]any{
			"buyer_name":    domain.AnonymizedName,
			"buyer_email":   domain.AnonymizedEmail,
			"buyer_phone":   "",
			"buyer_address": domain.AnonymizedAddress,
		})
	if asBuyer.Error != nil {
		return 0, asBuyer.Error
	}

	asSeller := s.tx.Model(&models.TransactionModel{}).
		Where("seller_id = ?", userID).
		Updates(map[string]any{
			"seller_name":  domain.AnonymizedName,
			"seller_email": domain.AnonymizedEmail,
			"seller_phone": "",
		})
	if asSeller.Error != nil {
		return 0, asSeller.Error
	}

	return asBuyer.RowsAffected + asSeller.RowsAffected, nil
}

func (s *deletionScope) AnonymizeUserPayments(userID string) (int64, error) {
	res := s.tx.Model(&models.PaymentModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"payee_name":  domain.AnonymizedName,
			"payee_email": domain.AnonymizedEmail,
		})
	return res.RowsAffected, res.Error
}

func (s *deletionScope) DeleteUserNotifications(userID string) error {
	return s.tx.Where("user_id = ?", userID).Delete(&models.NotificationModel{}).Error
}

func (s *deletionScope) DeleteUserMessages(userID string) error {
	return s.tx.Where("sender_id = ?", userID).Delete(&models.MessageModel{}).Error
}

func (s *deletionScope) DeleteUserVehicles(userID string) error {
	return s.tx.Where("seller_id = ?", userID).Delete(&models.VehicleModel{}).Error
}

func (s *deletionScope) AnonymizeUserReviews(userID string) error {
	return s.tx.Model(&models.ReviewModel{}).
		Where("reviewer_id = ?", userID).
		Updates(map[string]any{
			"reviewer_name": domain.AnonymizedName,
			"reviewer_id":   nil,
		}).Error
}

func (s *deletionScope) DeleteUser(userID string) error {
	res := s.tx.Where("id = ?", userID).Delete(&models.UserModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

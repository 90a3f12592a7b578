package repository

import (
	"context"
	"errors"

	"gamehaven/internal/models"

	"gorm.io/gorm"
)

// VerificationRepository defines persistence operations for email
// verification codes.
type VerificationRepository interface {
	Create(ctx context.Context, code *models.VerificationCode) error
	LatestByUser(ctx context.Context, userID uint) (*models.VerificationCode, error)
	IncrementAttempts(ctx context.Context, id uint) error
	MarkVerified(ctx context.Context, id uint) error
	InvalidateOutstanding(ctx context.Context, userID uint) error
}

type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification code repository
func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, code *models.VerificationCode) error {
	if err := r.db.WithContext(ctx).Create(code).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *verificationRepository) LatestByUser(ctx context.Context, userID uint) (*models.VerificationCode, error) {
	var code models.VerificationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND verified = ?", userID, false).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &code, nil
}

func (r *verificationRepository) IncrementAttempts(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.VerificationCode{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *verificationRepository) MarkVerified(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.VerificationCode{}).
		Where("id = ?", id).
		Update("verified", true).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// InvalidateOutstanding removes every unredeemed code for a user. Called
// before issuing a fresh code so only the newest one can be used.
func (r *verificationRepository) InvalidateOutstanding(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND verified = ?", userID, false).
		Delete(&models.VerificationCode{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"pottypal/internal/models/db_models"
	"pottypal/pkg/utils"
)

type RewardRepository interface {
	Insert(ctx context.Context, reward *db_models.Reward) error
	FindById(ctx context.Context, id string) (*db_models.Reward, error)
	ListByChild(ctx context.Context, childId uuid.UUID, activeOnly bool) ([]db_models.Reward, error)
	Update(ctx context.Context, reward *db_models.Reward) error
	Delete(ctx context.Context, id uuid.UUID) error
	Redeem(ctx context.Context, childId uuid.UUID, reward *db_models.Reward) (*db_models.RedeemedReward, error)
	ListRedemptions(ctx context.Context, childId uuid.UUID, page int, pageSize int) ([]db_models.RedeemedReward, error)
}

type rewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) Insert(ctx context.Context, reward *db_models.Reward) error {
	return r.db.WithContext(ctx).Create(reward).Error
}

func (r *rewardRepository) FindById(ctx context.Context, id string) (*db_models.Reward, error) {
	var reward db_models.Reward
	err := r.db.WithContext(ctx).First(&reward, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &reward, nil
}

func (r *rewardRepository) ListByChild(ctx context.Context, childId uuid.UUID, activeOnly bool) ([]db_models.Reward, error) {
	query := r.db.WithContext(ctx).Where("child_id = ?", childId)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rewards []db_models.Reward
	if err := query.Order("points_cost ASC").Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *rewardRepository) Update(ctx context.Context, reward *db_models.Reward) error {
	return r.db.WithContext(ctx).Save(reward).Error
}

func (r *rewardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Reward{}, "id = ?", id).Error
}

// Redeem decrements the balance and writes the receipt in one
// transaction. The decrement is conditional on sufficient balance, so a
// rejected redemption leaves both the balance and the receipts untouched.
func (r *rewardRepository) Redeem(ctx context.Context, childId uuid.UUID, reward *db_models.Reward) (*db_models.RedeemedReward, error) {
	receipt := &db_models.RedeemedReward{
		ChildID:     childId,
		RewardID:    reward.ID,
		PointsSpent: reward.PointsCost,
		RedeemedAt:  time.Now().Unix(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&db_models.Child{}).
			Where("id = ? AND total_points >= ?", childId, reward.PointsCost).
			UpdateColumn("total_points", gorm.Expr("total_points - ?", reward.PointsCost))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.ErrInsufficientPoints
		}

		return tx.Create(receipt).Error
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

func (r *rewardRepository) ListRedemptions(ctx context.Context, childId uuid.UUID, page int, pageSize int) ([]db_models.RedeemedReward, error) {
	var redemptions []db_models.RedeemedReward
	err := r.db.WithContext(ctx).
		Preload("Reward", func(db *gorm.DB) *gorm.DB {
			// receipts outlive soft-deleted rewards
			return db.Unscoped()
		}).
		Where("child_id = ?", childId).
		Order("redeemed_at DESC").
		Scopes(func(db *gorm.DB) *gorm.DB {
			offset := (page - 1) * pageSize
			return db.Offset(offset).Limit(pageSize)
		}).
		Find(&redemptions).Error
	if err != nil {
		return nil, err
	}
	return redemptions, nil
}

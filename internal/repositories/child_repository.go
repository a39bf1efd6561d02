package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"pottypal/internal/models/db_models"
	"pottypal/pkg/utils"
)

type ChildRepository interface {
	InsertWithCaregivers(ctx context.Context, child *db_models.Child, caregivers []db_models.Caregiver) error
	FindById(ctx context.Context, id string) (*db_models.Child, error)
	ListByAccount(ctx context.Context, accountId string) ([]db_models.Child, error)
	IncrementPoints(ctx context.Context, childId uuid.UUID, amount int) error
	SetPoints(ctx context.Context, childId uuid.UUID, value int) error
	UpdatePasscodeHash(ctx context.Context, childId uuid.UUID, hash string) error
}

type childRepository struct {
	db *gorm.DB
}

func NewChildRepository(db *gorm.DB) ChildRepository {
	return &childRepository{db: db}
}

// InsertWithCaregivers creates the child and its initial caregiver roster
// in one transaction, so onboarding never leaves a child without caregivers.
func (r *childRepository) InsertWithCaregivers(ctx context.Context, child *db_models.Child, caregivers []db_models.Caregiver) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(child).Error; err != nil {
			return err
		}

		for i := range caregivers {
			caregivers[i].ChildID = child.ID
		}
		return tx.Create(&caregivers).Error
	})
}

func (r *childRepository) FindById(ctx context.Context, id string) (*db_models.Child, error) {
	var child db_models.Child
	err := r.db.WithContext(ctx).First(&child, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &child, nil
}

func (r *childRepository) ListByAccount(ctx context.Context, accountId string) ([]db_models.Child, error) {
	var children []db_models.Child
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountId).
		Order("created_at ASC").
		Find(&children).Error
	if err != nil {
		return nil, err
	}
	return children, nil
}

// IncrementPoints is a single atomic SQL increment. The balance is never
// computed client-side and written back, so concurrent caregivers cannot
// lose updates. The update is conditional on the result staying at or
// above zero, so a deduction can never overdraw the balance.
func (r *childRepository) IncrementPoints(ctx context.Context, childId uuid.UUID, amount int) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Child{}).
		Where("id = ? AND total_points + ? >= 0", childId, amount).
		UpdateColumn("total_points", gorm.Expr("total_points + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrInsufficientPoints
	}
	return nil
}

func (r *childRepository) SetPoints(ctx context.Context, childId uuid.UUID, value int) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Child{}).
		Where("id = ?", childId).
		UpdateColumn("total_points", value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *childRepository) UpdatePasscodeHash(ctx context.Context, childId uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Child{}).
		Where("id = ?", childId).
		Update("passcode_hash", hash).Error
}

package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"pottypal/internal/models/db_models"
	"pottypal/pkg/utils"
)

type CaregiverRepository interface {
	Insert(ctx context.Context, caregiver *db_models.Caregiver) error
	FindById(ctx context.Context, id string) (*db_models.Caregiver, error)
	ListByChild(ctx context.Context, childId uuid.UUID) ([]db_models.Caregiver, error)
	ListNotifiable(ctx context.Context, childId uuid.UUID, notifType string) ([]db_models.Caregiver, error)
	Update(ctx context.Context, caregiver *db_models.Caregiver) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type caregiverRepository struct {
	db *gorm.DB
}

func NewCaregiverRepository(db *gorm.DB) CaregiverRepository {
	return &caregiverRepository{db: db}
}

func (r *caregiverRepository) Insert(ctx context.Context, caregiver *db_models.Caregiver) error {
	return r.db.WithContext(ctx).Create(caregiver).Error
}

func (r *caregiverRepository) FindById(ctx context.Context, id string) (*db_models.Caregiver, error) {
	var caregiver db_models.Caregiver
	err := r.db.WithContext(ctx).First(&caregiver, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &caregiver, nil
}

func (r *caregiverRepository) ListByChild(ctx context.Context, childId uuid.UUID) ([]db_models.Caregiver, error) {
	var caregivers []db_models.Caregiver
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childId).
		Order("created_at ASC").
		Find(&caregivers).Error
	if err != nil {
		return nil, err
	}
	return caregivers, nil
}

// ListNotifiable returns caregivers with an email who opted into the
// given notification type (an empty type list means all types).
func (r *caregiverRepository) ListNotifiable(ctx context.Context, childId uuid.UUID, notifType string) ([]db_models.Caregiver, error) {
	var caregivers []db_models.Caregiver
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND receive_notifications = ? AND email IS NOT NULL", childId, true).
		Find(&caregivers).Error
	if err != nil {
		return nil, err
	}

	filtered := caregivers[:0]
	for _, cg := range caregivers {
		if len(cg.NotificationTypes) == 0 {
			filtered = append(filtered, cg)
			continue
		}
		for _, t := range cg.NotificationTypes {
			if t == notifType {
				filtered = append(filtered, cg)
				break
			}
		}
	}
	return filtered, nil
}

func (r *caregiverRepository) Update(ctx context.Context, caregiver *db_models.Caregiver) error {
	return r.db.WithContext(ctx).Save(caregiver).Error
}

// Delete refuses to remove the last caregiver of a child; the count and
// the delete run in one transaction.
func (r *caregiverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var caregiver db_models.Caregiver
		if err := tx.First(&caregiver, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrCaregiverNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&db_models.Caregiver{}).
			Where("child_id = ?", caregiver.ChildID).
			Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return utils.ErrLastCaregiver
		}

		return tx.Delete(&caregiver).Error
	})
}

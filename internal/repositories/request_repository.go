package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"pottypal/internal/models/db_models"
	"pottypal/pkg/utils"
)

type RequestRepository interface {
	CreatePending(ctx context.Context, childId uuid.UUID, requestType db_models.RequestType) (*db_models.BathroomRequest, error)
	Complete(ctx context.Context, requestId uuid.UUID, points int, completedBy string) (*db_models.BathroomRequest, error)
	Cancel(ctx context.Context, requestId uuid.UUID) (*db_models.BathroomRequest, error)
	FindById(ctx context.Context, id string) (*db_models.BathroomRequest, error)
	FindPendingByChild(ctx context.Context, childId uuid.UUID) (*db_models.BathroomRequest, error)
	ListByChild(ctx context.Context, childId uuid.UUID, page int, pageSize int) ([]db_models.BathroomRequest, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// CreatePending enforces the at-most-one-pending invariant inside the
// transaction rather than trusting the caller's cached view.
func (r *requestRepository) CreatePending(ctx context.Context, childId uuid.UUID, requestType db_models.RequestType) (*db_models.BathroomRequest, error) {
	request := &db_models.BathroomRequest{
		ChildID:     childId,
		RequestType: requestType,
		Status:      db_models.RequestStatusPending,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize per child via the child row. SQLite (tests) has no
		// row locks; its single-writer model covers the same race.
		childQuery := tx.Model(&db_models.Child{})
		if tx.Dialector.Name() == "postgres" {
			childQuery = childQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var child db_models.Child
		if err := childQuery.First(&child, "id = ?", childId).Error; err != nil {
			return err
		}

		var pendingCount int64
		if err := tx.Model(&db_models.BathroomRequest{}).
			Where("child_id = ? AND status = ?", childId, db_models.RequestStatusPending).
			Count(&pendingCount).Error; err != nil {
			return err
		}
		if pendingCount > 0 {
			return utils.ErrPendingRequestExists
		}

		return tx.Create(request).Error
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// Complete transitions pending -> completed and credits the child's
// balance in the same transaction. The conditional update doubles as the
// terminal-state guard: a second resolution attempt matches zero rows.
func (r *requestRepository) Complete(ctx context.Context, requestId uuid.UUID, points int, completedBy string) (*db_models.BathroomRequest, error) {
	var request db_models.BathroomRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, "id = ?", requestId).Error; err != nil {
			return err
		}

		now := time.Now().Unix()
		result := tx.Model(&db_models.BathroomRequest{}).
			Where("id = ? AND status = ?", requestId, db_models.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":         db_models.RequestStatusCompleted,
				"points_awarded": points,
				"completed_by":   completedBy,
				"completed_at":   now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.ErrRequestAlreadyResolved
		}

		if err := tx.Model(&db_models.Child{}).
			Where("id = ?", request.ChildID).
			UpdateColumn("total_points", gorm.Expr("total_points + ?", points)).Error; err != nil {
			return err
		}

		request.Status = db_models.RequestStatusCompleted
		request.PointsAwarded = points
		request.CompletedBy = &completedBy
		request.CompletedAt = &now
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrRequestNotFound
		}
		return nil, err
	}

	return &request, nil
}

func (r *requestRepository) Cancel(ctx context.Context, requestId uuid.UUID) (*db_models.BathroomRequest, error) {
	var request db_models.BathroomRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, "id = ?", requestId).Error; err != nil {
			return err
		}

		now := time.Now().Unix()
		result := tx.Model(&db_models.BathroomRequest{}).
			Where("id = ? AND status = ?", requestId, db_models.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":       db_models.RequestStatusCancelled,
				"completed_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.ErrRequestAlreadyResolved
		}

		request.Status = db_models.RequestStatusCancelled
		request.CompletedAt = &now
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrRequestNotFound
		}
		return nil, err
	}

	return &request, nil
}

func (r *requestRepository) FindById(ctx context.Context, id string) (*db_models.BathroomRequest, error) {
	var request db_models.BathroomRequest
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &request, nil
}

func (r *requestRepository) FindPendingByChild(ctx context.Context, childId uuid.UUID) (*db_models.BathroomRequest, error) {
	var request db_models.BathroomRequest
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND status = ?", childId, db_models.RequestStatusPending).
		First(&request).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &request, nil
}

func (r *requestRepository) ListByChild(ctx context.Context, childId uuid.UUID, page int, pageSize int) ([]db_models.BathroomRequest, error) {
	var requests []db_models.BathroomRequest
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childId).
		Order("created_at DESC").
		Scopes(func(db *gorm.DB) *gorm.DB {
			offset := (page - 1) * pageSize
			return db.Offset(offset).Limit(pageSize)
		}).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

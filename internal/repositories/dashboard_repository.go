package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"pottypal/internal/models/db_models"
)

type PointTotals struct {
	TotalEarned int
	TotalSpent  int
}

type DashboardRepository interface {
	PointTotals(ctx context.Context, childId uuid.UUID) (*PointTotals, error)
	PendingRequests(ctx context.Context, childId uuid.UUID) ([]db_models.BathroomRequest, error)
	RecentResolved(ctx context.Context, childId uuid.UUID, limit int) ([]db_models.BathroomRequest, error)
	RedemptionCount(ctx context.Context, childId uuid.UUID) (int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) PointTotals(ctx context.Context, childId uuid.UUID) (*PointTotals, error) {
	totals := &PointTotals{}

	err := r.db.WithContext(ctx).
		Model(&db_models.BathroomRequest{}).
		Where("child_id = ? AND status = ?", childId, db_models.RequestStatusCompleted).
		Select("COALESCE(SUM(points_awarded), 0)").
		Scan(&totals.TotalEarned).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&db_models.RedeemedReward{}).
		Where("child_id = ?", childId).
		Select("COALESCE(SUM(points_spent), 0)").
		Scan(&totals.TotalSpent).Error
	if err != nil {
		return nil, err
	}

	return totals, nil
}

func (r *dashboardRepository) PendingRequests(ctx context.Context, childId uuid.UUID) ([]db_models.BathroomRequest, error) {
	var requests []db_models.BathroomRequest
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND status = ?", childId, db_models.RequestStatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *dashboardRepository) RecentResolved(ctx context.Context, childId uuid.UUID, limit int) ([]db_models.BathroomRequest, error) {
	var requests []db_models.BathroomRequest
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND status <> ?", childId, db_models.RequestStatusPending).
		Order("completed_at DESC").
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *dashboardRepository) RedemptionCount(ctx context.Context, childId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.RedeemedReward{}).
		Where("child_id = ?", childId).
		Count(&count).Error
	return count, err
}

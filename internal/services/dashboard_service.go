package services

import (
	"context"

	"pottypal/internal/models/db_models"
	"pottypal/internal/models/response_models"
	"pottypal/internal/repositories"
	"pottypal/pkg/utils"
)

const recentHistoryLimit = 20

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, accountId string, childId string) (*response_models.DashboardResponse, error)
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepository
	childRepo     repositories.ChildRepository
}

func NewDashboardService(dashboardRepo repositories.DashboardRepository, childRepo repositories.ChildRepository) DashboardServiceInterface {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		childRepo:     childRepo,
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context, accountId string, childId string) (*response_models.DashboardResponse, error) {
	child, err := s.childRepo.FindById(ctx, childId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if child == nil {
		return nil, utils.ErrChildNotFound
	}
	if child.AccountID.String() != accountId {
		return nil, utils.ErrNotOwner
	}

	totals, err := s.dashboardRepo.PointTotals(ctx, child.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	pending, err := s.dashboardRepo.PendingRequests(ctx, child.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	recent, err := s.dashboardRepo.RecentResolved(ctx, child.ID, recentHistoryLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	redemptionCount, err := s.dashboardRepo.RedemptionCount(ctx, child.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.DashboardResponse{
		Child: toChildResponse(child),
		Points: response_models.PointBalance{
			TotalEarned: totals.TotalEarned,
			TotalSpent:  totals.TotalSpent,
			Balance:     child.TotalPoints,
		},
		PendingRequests: toRequestResponses(pending),
		RecentHistory:   toRequestResponses(recent),
		RedemptionCount: redemptionCount,
	}, nil
}

func toRequestResponses(requests []db_models.BathroomRequest) []response_models.BathroomRequestResponse {
	responses := make([]response_models.BathroomRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, toRequestResponse(&requests[i]))
	}
	return responses
}

package services

import (
	"context"

	"pottypal/internal/models/db_models"
	"pottypal/internal/models/request_models"
	"pottypal/internal/models/response_models"
	"pottypal/internal/repositories"
	"pottypal/pkg/realtime"
	"pottypal/pkg/utils"
)

type RewardServiceInterface interface {
	CreateReward(ctx context.Context, accountId string, childId string, request request_models.CreateRewardRequest) (*response_models.RewardResponse, error)
	UpdateReward(ctx context.Context, accountId string, caregiverChildId string, rewardId string, request request_models.UpdateRewardRequest) (*response_models.RewardResponse, error)
	ToggleReward(ctx context.Context, accountId string, caregiverChildId string, rewardId string) (*response_models.RewardResponse, error)
	DeleteReward(ctx context.Context, accountId string, caregiverChildId string, rewardId string) error
	ListRewards(ctx context.Context, accountId string, childId string, activeOnly bool) ([]response_models.RewardResponse, error)
	Redeem(ctx context.Context, accountId string, rewardId string) (*response_models.RedemptionResponse, error)
	ListRedemptions(ctx context.Context, accountId string, childId string, page int, pageSize int) ([]response_models.RedemptionResponse, error)
}

type RewardService struct {
	rewardRepo repositories.RewardRepository
	childRepo  repositories.ChildRepository
	hub        *realtime.Hub
}

func NewRewardService(rewardRepo repositories.RewardRepository, childRepo repositories.ChildRepository, hub *realtime.Hub) RewardServiceInterface {
	return &RewardService{
		rewardRepo: rewardRepo,
		childRepo:  childRepo,
		hub:        hub,
	}
}

func (s *RewardService) CreateReward(ctx context.Context, accountId string, childId string, request request_models.CreateRewardRequest) (*response_models.RewardResponse, error) {
	if request.PointsCost <= 0 {
		return nil, utils.ErrInvalidInput
	}

	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return nil, err
	}

	reward := &db_models.Reward{
		ChildID:     child.ID,
		Name:        request.Name,
		Description: request.Description,
		PointsCost:  request.PointsCost,
		Icon:        request.Icon,
		ImageURL:    request.ImageURL,
		IsActive:    true,
	}

	if err := s.rewardRepo.Insert(ctx, reward); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toRewardResponse(reward)

	s.hub.Publish(realtime.Event{
		ChildID: child.ID.String(),
		Entity:  "reward",
		Action:  realtime.ActionInsert,
		Payload: resp,
	})

	return &resp, nil
}

func (s *RewardService) UpdateReward(ctx context.Context, accountId string, caregiverChildId string, rewardId string, request request_models.UpdateRewardRequest) (*response_models.RewardResponse, error) {
	reward, err := s.scopedReward(ctx, accountId, caregiverChildId, rewardId)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		reward.Name = *request.Name
	}
	if request.Description != nil {
		reward.Description = request.Description
	}
	if request.PointsCost != nil {
		if *request.PointsCost <= 0 {
			return nil, utils.ErrInvalidInput
		}
		reward.PointsCost = *request.PointsCost
	}
	if request.Icon != nil {
		reward.Icon = *request.Icon
	}
	if request.ImageURL != nil {
		reward.ImageURL = request.ImageURL
	}
	if request.IsActive != nil {
		reward.IsActive = *request.IsActive
	}

	if err := s.rewardRepo.Update(ctx, reward); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toRewardResponse(reward)

	s.hub.Publish(realtime.Event{
		ChildID: reward.ChildID.String(),
		Entity:  "reward",
		Action:  realtime.ActionUpdate,
		Payload: resp,
	})

	return &resp, nil
}

func (s *RewardService) ToggleReward(ctx context.Context, accountId string, caregiverChildId string, rewardId string) (*response_models.RewardResponse, error) {
	reward, err := s.scopedReward(ctx, accountId, caregiverChildId, rewardId)
	if err != nil {
		return nil, err
	}

	reward.IsActive = !reward.IsActive
	if err := s.rewardRepo.Update(ctx, reward); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toRewardResponse(reward)

	s.hub.Publish(realtime.Event{
		ChildID: reward.ChildID.String(),
		Entity:  "reward",
		Action:  realtime.ActionUpdate,
		Payload: resp,
	})

	return &resp, nil
}

func (s *RewardService) DeleteReward(ctx context.Context, accountId string, caregiverChildId string, rewardId string) error {
	reward, err := s.scopedReward(ctx, accountId, caregiverChildId, rewardId)
	if err != nil {
		return err
	}

	if err := s.rewardRepo.Delete(ctx, reward.ID); err != nil {
		return utils.ErrDatabaseError
	}

	s.hub.Publish(realtime.Event{
		ChildID: reward.ChildID.String(),
		Entity:  "reward",
		Action:  realtime.ActionDelete,
		Payload: map[string]interface{}{"id": reward.ID.String()},
	})

	return nil
}

func (s *RewardService) ListRewards(ctx context.Context, accountId string, childId string, activeOnly bool) ([]response_models.RewardResponse, error) {
	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return nil, err
	}

	rewards, err := s.rewardRepo.ListByChild(ctx, child.ID, activeOnly)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.RewardResponse, 0, len(rewards))
	for i := range rewards {
		responses = append(responses, toRewardResponse(&rewards[i]))
	}
	return responses, nil
}

// Redeem converts sufficient balance into a receipt. The reward must be
// active; the balance check and decrement happen atomically in the
// repository, so a rejected redemption changes nothing.
func (s *RewardService) Redeem(ctx context.Context, accountId string, rewardId string) (*response_models.RedemptionResponse, error) {
	reward, err := s.ownedReward(ctx, accountId, rewardId)
	if err != nil {
		return nil, err
	}
	if !reward.IsActive {
		return nil, utils.ErrRewardInactive
	}

	receipt, err := s.rewardRepo.Redeem(ctx, reward.ChildID, reward)
	if err != nil {
		if err == utils.ErrInsufficientPoints {
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}

	resp := response_models.RedemptionResponse{
		ID:          receipt.ID.String(),
		RewardID:    reward.ID.String(),
		PointsSpent: receipt.PointsSpent,
		RedeemedAt:  receipt.RedeemedAt,
		Reward:      toRewardResponse(reward),
	}

	s.hub.Publish(realtime.Event{
		ChildID: reward.ChildID.String(),
		Entity:  "redeemed_reward",
		Action:  realtime.ActionInsert,
		Payload: resp,
	})
	if fresh, err := s.childRepo.FindById(ctx, reward.ChildID.String()); err == nil && fresh != nil {
		s.hub.Publish(realtime.Event{
			ChildID: reward.ChildID.String(),
			Entity:  "child",
			Action:  realtime.ActionUpdate,
			Payload: map[string]interface{}{"total_points": fresh.TotalPoints},
		})
	}

	return &resp, nil
}

func (s *RewardService) ListRedemptions(ctx context.Context, accountId string, childId string, page int, pageSize int) ([]response_models.RedemptionResponse, error) {
	if page < 1 || pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidInput
	}

	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return nil, err
	}

	redemptions, err := s.rewardRepo.ListRedemptions(ctx, child.ID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.RedemptionResponse, 0, len(redemptions))
	for i := range redemptions {
		r := &redemptions[i]
		responses = append(responses, response_models.RedemptionResponse{
			ID:          r.ID.String(),
			RewardID:    r.RewardID.String(),
			PointsSpent: r.PointsSpent,
			RedeemedAt:  r.RedeemedAt,
			Reward:      toRewardResponse(&r.Reward),
		})
	}
	return responses, nil
}

func (s *RewardService) ownedChild(ctx context.Context, accountId string, childId string) (*db_models.Child, error) {
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
	return child, nil
}

// scopedReward is ownedReward plus the caregiver token's child scope:
// catalog management under a caregiver token is limited to the child
// whose passcode was verified.
func (s *RewardService) scopedReward(ctx context.Context, accountId string, caregiverChildId string, rewardId string) (*db_models.Reward, error) {
	reward, err := s.ownedReward(ctx, accountId, rewardId)
	if err != nil {
		return nil, err
	}
	if caregiverChildId != "" && reward.ChildID.String() != caregiverChildId {
		return nil, utils.ErrCaregiverScope
	}
	return reward, nil
}

func (s *RewardService) ownedReward(ctx context.Context, accountId string, rewardId string) (*db_models.Reward, error) {
	reward, err := s.rewardRepo.FindById(ctx, rewardId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if reward == nil {
		return nil, utils.ErrRewardNotFound
	}

	if _, err := s.ownedChild(ctx, accountId, reward.ChildID.String()); err != nil {
		return nil, err
	}
	return reward, nil
}

func toRewardResponse(reward *db_models.Reward) response_models.RewardResponse {
	return response_models.RewardResponse{
		ID:          reward.ID.String(),
		ChildID:     reward.ChildID.String(),
		Name:        reward.Name,
		Description: reward.Description,
		PointsCost:  reward.PointsCost,
		Icon:        reward.Icon,
		ImageURL:    reward.ImageURL,
		IsActive:    reward.IsActive,
		CreatedAt:   reward.CreatedAt,
	}
}

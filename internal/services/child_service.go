package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"pottypal/internal/models/db_models"
	"pottypal/internal/models/request_models"
	"pottypal/internal/models/response_models"
	"pottypal/internal/repositories"
	"pottypal/pkg/realtime"
	"pottypal/pkg/utils"
)

type ChildServiceInterface interface {
	Onboard(ctx context.Context, accountId string, request request_models.OnboardChildRequest) (*response_models.ChildResponse, error)
	ListChildren(ctx context.Context, accountId string) ([]response_models.ChildResponse, error)
	GetChild(ctx context.Context, accountId string, childId string) (*response_models.ChildResponse, error)
	VerifyPasscode(ctx context.Context, accountId string, childId string, passcode string) (string, error)
	ChangePasscode(ctx context.Context, accountId string, childId string, newPasscode string) error
	SetPoints(ctx context.Context, accountId string, childId string, value int) (*response_models.ChildResponse, error)
	AddPoints(ctx context.Context, accountId string, childId string, delta int) (*response_models.ChildResponse, error)
}

type ChildService struct {
	childRepo repositories.ChildRepository
	hub       *realtime.Hub
}

func NewChildService(childRepo repositories.ChildRepository, hub *realtime.Hub) ChildServiceInterface {
	return &ChildService{
		childRepo: childRepo,
		hub:       hub,
	}
}

// Onboard creates the child with a hashed passcode and at least one
// caregiver, all in one transaction.
func (s *ChildService) Onboard(ctx context.Context, accountId string, request request_models.OnboardChildRequest) (*response_models.ChildResponse, error) {

	if !utils.ValidPasscode(request.Passcode) {
		return nil, utils.ErrInvalidInput
	}
	if len(request.Caregivers) == 0 {
		return nil, utils.ErrInvalidInput
	}

	accountUUID, err := uuid.Parse(accountId)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	passcodeHash, err := utils.HashPasscode(request.Passcode)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	child := &db_models.Child{
		AccountID:    accountUUID,
		Name:         request.ChildName,
		Age:          request.ChildAge,
		PasscodeHash: passcodeHash,
	}

	caregivers := make([]db_models.Caregiver, 0, len(request.Caregivers))
	for _, cg := range request.Caregivers {
		if cg.Name == "" {
			return nil, utils.ErrInvalidInput
		}
		caregivers = append(caregivers, db_models.Caregiver{
			Name:                 cg.Name,
			Email:                cg.Email,
			Phone:                cg.Phone,
			ReceiveNotifications: cg.ReceiveNotifications,
			NotificationTypes:    pq.StringArray(cg.NotificationTypes),
		})
	}

	if err := s.childRepo.InsertWithCaregivers(ctx, child, caregivers); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toChildResponse(child)
	return &resp, nil
}

func (s *ChildService) ListChildren(ctx context.Context, accountId string) ([]response_models.ChildResponse, error) {
	children, err := s.childRepo.ListByAccount(ctx, accountId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.ChildResponse, 0, len(children))
	for i := range children {
		responses = append(responses, toChildResponse(&children[i]))
	}
	return responses, nil
}

func (s *ChildService) GetChild(ctx context.Context, accountId string, childId string) (*response_models.ChildResponse, error) {
	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return nil, err
	}

	resp := toChildResponse(child)
	return &resp, nil
}

// VerifyPasscode checks the caregiver passcode against its bcrypt hash
// and, on success, issues a caregiver-mode token scoped to this child.
func (s *ChildService) VerifyPasscode(ctx context.Context, accountId string, childId string, passcode string) (string, error) {
	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return "", err
	}

	if err := utils.ComparePasscode(child.PasscodeHash, passcode); err != nil {
		return "", utils.ErrInvalidPasscode
	}

	token, err := utils.CreateCaregiverToken(child.AccountID, child.ID)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	return token, nil
}

func (s *ChildService) ChangePasscode(ctx context.Context, accountId string, childId string, newPasscode string) error {
	if !utils.ValidPasscode(newPasscode) {
		return utils.ErrInvalidInput
	}

	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return err
	}

	passcodeHash, err := utils.HashPasscode(newPasscode)
	if err != nil {
		return utils.ErrInvalidInput
	}

	if err := s.childRepo.UpdatePasscodeHash(ctx, child.ID, passcodeHash); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// SetPoints is the caregiver's manual override of the balance.
func (s *ChildService) SetPoints(ctx context.Context, accountId string, childId string, value int) (*response_models.ChildResponse, error) {
	if value < 0 {
		return nil, utils.ErrInvalidInput
	}

	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return nil, err
	}

	if err := s.childRepo.SetPoints(ctx, child.ID, value); err != nil {
		return nil, utils.ErrDatabaseError
	}

	child.TotalPoints = value
	resp := toChildResponse(child)

	s.hub.Publish(realtime.Event{
		ChildID: child.ID.String(),
		Entity:  "child",
		Action:  realtime.ActionUpdate,
		Payload: resp,
	})

	return &resp, nil
}

// AddPoints applies a signed delta to the balance, for bonus awards or
// corrections. A deduction past zero is rejected without changing anything.
func (s *ChildService) AddPoints(ctx context.Context, accountId string, childId string, delta int) (*response_models.ChildResponse, error) {
	if delta == 0 {
		return nil, utils.ErrInvalidInput
	}

	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return nil, err
	}

	if err := s.childRepo.IncrementPoints(ctx, child.ID, delta); err != nil {
		if err == utils.ErrInsufficientPoints {
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}

	child.TotalPoints += delta
	resp := toChildResponse(child)

	s.hub.Publish(realtime.Event{
		ChildID: child.ID.String(),
		Entity:  "child",
		Action:  realtime.ActionUpdate,
		Payload: resp,
	})

	return &resp, nil
}

func (s *ChildService) ownedChild(ctx context.Context, accountId string, childId string) (*db_models.Child, error) {
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

func toChildResponse(child *db_models.Child) response_models.ChildResponse {
	return response_models.ChildResponse{
		ID:          child.ID.String(),
		Name:        child.Name,
		Age:         child.Age,
		TotalPoints: child.TotalPoints,
		CreatedAt:   child.CreatedAt,
	}
}

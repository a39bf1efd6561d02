package services

import (
	"context"

	"github.com/lib/pq"
	"pottypal/internal/models/db_models"
	"pottypal/internal/models/request_models"
	"pottypal/internal/models/response_models"
	"pottypal/internal/repositories"
	"pottypal/pkg/utils"
)

type CaregiverServiceInterface interface {
	AddCaregiver(ctx context.Context, accountId string, childId string, request request_models.CaregiverInput) (*response_models.CaregiverResponse, error)
	ListCaregivers(ctx context.Context, accountId string, childId string) ([]response_models.CaregiverResponse, error)
	UpdateCaregiver(ctx context.Context, accountId string, caregiverChildId string, caregiverId string, request request_models.CaregiverInput) (*response_models.CaregiverResponse, error)
	ToggleNotifications(ctx context.Context, accountId string, caregiverChildId string, caregiverId string) (*response_models.CaregiverResponse, error)
	RemoveCaregiver(ctx context.Context, accountId string, caregiverChildId string, caregiverId string) error
}

type CaregiverService struct {
	caregiverRepo repositories.CaregiverRepository
	childRepo     repositories.ChildRepository
}

func NewCaregiverService(caregiverRepo repositories.CaregiverRepository, childRepo repositories.ChildRepository) CaregiverServiceInterface {
	return &CaregiverService{
		caregiverRepo: caregiverRepo,
		childRepo:     childRepo,
	}
}

func (s *CaregiverService) AddCaregiver(ctx context.Context, accountId string, childId string, request request_models.CaregiverInput) (*response_models.CaregiverResponse, error) {
	if request.Name == "" {
		return nil, utils.ErrInvalidInput
	}

	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return nil, err
	}

	caregiver := &db_models.Caregiver{
		ChildID:              child.ID,
		Name:                 request.Name,
		Email:                request.Email,
		Phone:                request.Phone,
		ReceiveNotifications: request.ReceiveNotifications,
		NotificationTypes:    pq.StringArray(request.NotificationTypes),
	}

	if err := s.caregiverRepo.Insert(ctx, caregiver); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toCaregiverResponse(caregiver)
	return &resp, nil
}

func (s *CaregiverService) ListCaregivers(ctx context.Context, accountId string, childId string) ([]response_models.CaregiverResponse, error) {
	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return nil, err
	}

	caregivers, err := s.caregiverRepo.ListByChild(ctx, child.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.CaregiverResponse, 0, len(caregivers))
	for i := range caregivers {
		responses = append(responses, toCaregiverResponse(&caregivers[i]))
	}
	return responses, nil
}

func (s *CaregiverService) UpdateCaregiver(ctx context.Context, accountId string, caregiverChildId string, caregiverId string, request request_models.CaregiverInput) (*response_models.CaregiverResponse, error) {
	caregiver, err := s.scopedCaregiver(ctx, accountId, caregiverChildId, caregiverId)
	if err != nil {
		return nil, err
	}

	if request.Name != "" {
		caregiver.Name = request.Name
	}
	caregiver.Email = request.Email
	caregiver.Phone = request.Phone
	caregiver.ReceiveNotifications = request.ReceiveNotifications
	caregiver.NotificationTypes = pq.StringArray(request.NotificationTypes)

	if err := s.caregiverRepo.Update(ctx, caregiver); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toCaregiverResponse(caregiver)
	return &resp, nil
}

func (s *CaregiverService) ToggleNotifications(ctx context.Context, accountId string, caregiverChildId string, caregiverId string) (*response_models.CaregiverResponse, error) {
	caregiver, err := s.scopedCaregiver(ctx, accountId, caregiverChildId, caregiverId)
	if err != nil {
		return nil, err
	}

	caregiver.ReceiveNotifications = !caregiver.ReceiveNotifications
	if err := s.caregiverRepo.Update(ctx, caregiver); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toCaregiverResponse(caregiver)
	return &resp, nil
}

func (s *CaregiverService) RemoveCaregiver(ctx context.Context, accountId string, caregiverChildId string, caregiverId string) error {
	caregiver, err := s.scopedCaregiver(ctx, accountId, caregiverChildId, caregiverId)
	if err != nil {
		return err
	}

	err = s.caregiverRepo.Delete(ctx, caregiver.ID)
	if err != nil {
		switch err {
		case utils.ErrCaregiverNotFound, utils.ErrLastCaregiver:
			return err
		default:
			return utils.ErrDatabaseError
		}
	}
	return nil
}

func (s *CaregiverService) ownedChild(ctx context.Context, accountId string, childId string) (*db_models.Child, error) {
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

// scopedCaregiver is ownedCaregiver plus the caregiver token's child
// scope: roster management under a caregiver token stays confined to
// the child whose passcode was verified.
func (s *CaregiverService) scopedCaregiver(ctx context.Context, accountId string, caregiverChildId string, caregiverId string) (*db_models.Caregiver, error) {
	caregiver, err := s.ownedCaregiver(ctx, accountId, caregiverId)
	if err != nil {
		return nil, err
	}
	if caregiverChildId != "" && caregiver.ChildID.String() != caregiverChildId {
		return nil, utils.ErrCaregiverScope
	}
	return caregiver, nil
}

func (s *CaregiverService) ownedCaregiver(ctx context.Context, accountId string, caregiverId string) (*db_models.Caregiver, error) {
	caregiver, err := s.caregiverRepo.FindById(ctx, caregiverId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if caregiver == nil {
		return nil, utils.ErrCaregiverNotFound
	}

	if _, err := s.ownedChild(ctx, accountId, caregiver.ChildID.String()); err != nil {
		return nil, err
	}
	return caregiver, nil
}

func toCaregiverResponse(caregiver *db_models.Caregiver) response_models.CaregiverResponse {
	return response_models.CaregiverResponse{
		ID:                   caregiver.ID.String(),
		ChildID:              caregiver.ChildID.String(),
		Name:                 caregiver.Name,
		Email:                caregiver.Email,
		Phone:                caregiver.Phone,
		ReceiveNotifications: caregiver.ReceiveNotifications,
		NotificationTypes:    caregiver.NotificationTypes,
		CreatedAt:            caregiver.CreatedAt,
	}
}

package services

import (
	"context"
	"fmt"
	"log"

	"pottypal/internal/models/db_models"
	"pottypal/internal/models/response_models"
	"pottypal/internal/repositories"
	"pottypal/pkg/realtime"
	"pottypal/pkg/utils"
)

const defaultPointsAward = 10

type RequestServiceInterface interface {
	CreateRequest(ctx context.Context, accountId string, childId string, requestType string) (*response_models.BathroomRequestResponse, error)
	CompleteRequest(ctx context.Context, accountId string, caregiverChildId string, requestId string, pointsToAward *int, completedBy string) (*response_models.BathroomRequestResponse, error)
	CancelRequest(ctx context.Context, accountId string, caregiverChildId string, requestId string) (*response_models.BathroomRequestResponse, error)
	GetPendingRequest(ctx context.Context, accountId string, childId string) (*response_models.BathroomRequestResponse, error)
	ListRequests(ctx context.Context, accountId string, childId string, page int, pageSize int) ([]response_models.BathroomRequestResponse, error)
}

type RequestService struct {
	requestRepo   repositories.RequestRepository
	childRepo     repositories.ChildRepository
	caregiverRepo repositories.CaregiverRepository
	mailService   IMailService
	hub           *realtime.Hub
}

func NewRequestService(
	requestRepo repositories.RequestRepository,
	childRepo repositories.ChildRepository,
	caregiverRepo repositories.CaregiverRepository,
	mailService IMailService,
	hub *realtime.Hub,
) RequestServiceInterface {
	return &RequestService{
		requestRepo:   requestRepo,
		childRepo:     childRepo,
		caregiverRepo: caregiverRepo,
		mailService:   mailService,
		hub:           hub,
	}
}

func (s *RequestService) CreateRequest(ctx context.Context, accountId string, childId string, requestType string) (*response_models.BathroomRequestResponse, error) {

	reqType := db_models.RequestType(requestType)
	if !reqType.Valid() {
		return nil, utils.ErrInvalidInput
	}

	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.CreatePending(ctx, child.ID, reqType)
	if err != nil {
		if err == utils.ErrPendingRequestExists {
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}

	resp := toRequestResponse(request)

	s.hub.Publish(realtime.Event{
		ChildID: child.ID.String(),
		Entity:  "bathroom_request",
		Action:  realtime.ActionInsert,
		Payload: resp,
	})

	go s.notifyCaregivers(child, request)

	return &resp, nil
}

func (s *RequestService) CompleteRequest(ctx context.Context, accountId string, caregiverChildId string, requestId string, pointsToAward *int, completedBy string) (*response_models.BathroomRequestResponse, error) {

	points := defaultPointsAward
	if pointsToAward != nil {
		points = *pointsToAward
	}
	if points < 0 {
		return nil, utils.ErrInvalidInput
	}

	child, existing, err := s.childOfRequest(ctx, accountId, caregiverChildId, requestId)
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.Complete(ctx, existing.ID, points, completedBy)
	if err != nil {
		switch err {
		case utils.ErrRequestNotFound, utils.ErrRequestAlreadyResolved:
			return nil, err
		default:
			return nil, utils.ErrDatabaseError
		}
	}

	resp := toRequestResponse(request)

	s.hub.Publish(realtime.Event{
		ChildID: child.ID.String(),
		Entity:  "bathroom_request",
		Action:  realtime.ActionUpdate,
		Payload: resp,
	})
	if fresh, err := s.childRepo.FindById(ctx, child.ID.String()); err == nil && fresh != nil {
		s.hub.Publish(realtime.Event{
			ChildID: child.ID.String(),
			Entity:  "child",
			Action:  realtime.ActionUpdate,
			Payload: map[string]interface{}{"total_points": fresh.TotalPoints},
		})
	}

	return &resp, nil
}

func (s *RequestService) CancelRequest(ctx context.Context, accountId string, caregiverChildId string, requestId string) (*response_models.BathroomRequestResponse, error) {

	child, existing, err := s.childOfRequest(ctx, accountId, caregiverChildId, requestId)
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.Cancel(ctx, existing.ID)
	if err != nil {
		switch err {
		case utils.ErrRequestNotFound, utils.ErrRequestAlreadyResolved:
			return nil, err
		default:
			return nil, utils.ErrDatabaseError
		}
	}

	resp := toRequestResponse(request)

	s.hub.Publish(realtime.Event{
		ChildID: child.ID.String(),
		Entity:  "bathroom_request",
		Action:  realtime.ActionUpdate,
		Payload: resp,
	})

	return &resp, nil
}

func (s *RequestService) GetPendingRequest(ctx context.Context, accountId string, childId string) (*response_models.BathroomRequestResponse, error) {
	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.FindPendingByChild(ctx, child.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if request == nil {
		return nil, nil
	}

	resp := toRequestResponse(request)
	return &resp, nil
}

func (s *RequestService) ListRequests(ctx context.Context, accountId string, childId string, page int, pageSize int) ([]response_models.BathroomRequestResponse, error) {
	if page < 1 || pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidInput
	}

	child, err := s.ownedChild(ctx, accountId, childId)
	if err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.ListByChild(ctx, child.ID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.BathroomRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, toRequestResponse(&requests[i]))
	}
	return responses, nil
}

// notifyCaregivers mails everyone opted into new-request notifications.
// Failures are logged only; the request itself already succeeded.
func (s *RequestService) notifyCaregivers(child *db_models.Child, request *db_models.BathroomRequest) {
	caregivers, err := s.caregiverRepo.ListNotifiable(context.Background(), child.ID, db_models.NotifTypeNewRequest)
	if err != nil {
		log.Printf("Failed to load notifiable caregivers for child %s: %v", child.ID, err)
		return
	}

	subject := fmt.Sprintf("%s needs help (%s)", child.Name, request.RequestType)
	body := fmt.Sprintf("%s just signaled a %s request. Open the caregiver dashboard to resolve it.", child.Name, request.RequestType)

	for _, cg := range caregivers {
		if cg.Email == nil {
			continue
		}
		if err := s.mailService.SendMailToNotifyCaregiver(*cg.Email, subject, body); err != nil {
			log.Printf("Failed to notify caregiver %s: %v", cg.Name, err)
		}
	}
}

func (s *RequestService) ownedChild(ctx context.Context, accountId string, childId string) (*db_models.Child, error) {
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

// childOfRequest resolves the request's child and checks both account
// ownership and, when set, the caregiver token's child scope. A passcode
// verified for one child grants nothing on a sibling.
func (s *RequestService) childOfRequest(ctx context.Context, accountId string, caregiverChildId string, requestId string) (*db_models.Child, *db_models.BathroomRequest, error) {
	request, err := s.requestRepo.FindById(ctx, requestId)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if request == nil {
		return nil, nil, utils.ErrRequestNotFound
	}

	child, err := s.ownedChild(ctx, accountId, request.ChildID.String())
	if err != nil {
		return nil, nil, err
	}
	if caregiverChildId != "" && child.ID.String() != caregiverChildId {
		return nil, nil, utils.ErrCaregiverScope
	}
	return child, request, nil
}

func toRequestResponse(request *db_models.BathroomRequest) response_models.BathroomRequestResponse {
	return response_models.BathroomRequestResponse{
		ID:            request.ID.String(),
		ChildID:       request.ChildID.String(),
		RequestType:   string(request.RequestType),
		Status:        string(request.Status),
		PointsAwarded: request.PointsAwarded,
		CompletedBy:   request.CompletedBy,
		CreatedAt:     request.CreatedAt,
		CompletedAt:   request.CompletedAt,
	}
}

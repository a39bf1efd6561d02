package db_models

import "github.com/google/uuid"

type RequestType string

const (
	RequestTypePee  RequestType = "pee"
	RequestTypePoop RequestType = "poop"
)

func (t RequestType) Valid() bool {
	return t == RequestTypePee || t == RequestTypePoop
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// BathroomRequest is written once by the child and resolved exactly once
// by a caregiver. Completed and cancelled are terminal.
type BathroomRequest struct {
	BaseModel
	ChildID       uuid.UUID     `gorm:"index"`
	RequestType   RequestType   `gorm:"size:8"`
	Status        RequestStatus `gorm:"size:16;index"`
	PointsAwarded int           `gorm:"default:0"`
	CompletedBy   *string
	CompletedAt   *int64

	Child Child `gorm:"foreignKey:ChildID"`
}

package db_models

import "github.com/google/uuid"

type Reward struct {
	BaseModel
	ChildID     uuid.UUID `gorm:"index"`
	Name        string
	Description *string
	PointsCost  int
	Icon        string
	ImageURL    *string
	IsActive    bool `gorm:"default:true"`

	Child Child `gorm:"foreignKey:ChildID"`
}

package db_models

import "github.com/google/uuid"

// RedeemedReward is an immutable receipt. Created inside the same
// transaction that decrements the child's balance, never updated.
type RedeemedReward struct {
	BaseModel
	ChildID     uuid.UUID `gorm:"index"`
	RewardID    uuid.UUID `gorm:"index"`
	PointsSpent int
	RedeemedAt  int64

	Child  Child  `gorm:"foreignKey:ChildID"`
	Reward Reward `gorm:"foreignKey:RewardID"`
}

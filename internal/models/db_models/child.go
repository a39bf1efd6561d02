package db_models

import "github.com/google/uuid"

type Child struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index"`
	Name      string
	Age       *int
	// Spendable balance. Mutated only through the ledger operations
	// (atomic SQL increment/decrement or caregiver override).
	TotalPoints  int `gorm:"default:0"`
	PasscodeHash string

	Account         Account `gorm:"foreignKey:AccountID"`
	Requests        []BathroomRequest
	Rewards         []Reward
	RedeemedRewards []RedeemedReward
	Caregivers      []Caregiver
}

package response_models

type RewardResponse struct {
	ID          string  `json:"id"`
	ChildID     string  `json:"child_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	PointsCost  int     `json:"points_cost"`
	Icon        string  `json:"icon,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   int64   `json:"created_at"`
}

type RedemptionResponse struct {
	ID          string         `json:"id"`
	RewardID    string         `json:"reward_id"`
	PointsSpent int            `json:"points_spent"`
	RedeemedAt  int64          `json:"redeemed_at"`
	Reward      RewardResponse `json:"reward"`
}

package request_models

type CreateRewardRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	PointsCost  int     `json:"points_cost" binding:"required,gt=0"`
	Icon        string  `json:"icon"`
	ImageURL    *string `json:"image_url"`
}

type UpdateRewardRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PointsCost  *int    `json:"points_cost"`
	Icon        *string `json:"icon"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

package request_models

type CelebrationMessageRequest struct {
	ChildName    string `json:"child_name" binding:"required"`
	RequestType  string `json:"request_type" binding:"required"`
	PointsEarned int    `json:"points_earned"`
}

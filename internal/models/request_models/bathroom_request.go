package request_models

type CreateBathroomRequest struct {
	RequestType string `json:"request_type" binding:"required"`
}

type CompleteRequestRequest struct {
	PointsToAward *int   `json:"points_to_award"`
	CompletedBy   string `json:"completed_by"`
}

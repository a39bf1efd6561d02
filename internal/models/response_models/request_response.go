package response_models

type BathroomRequestResponse struct {
	ID            string  `json:"id"`
	ChildID       string  `json:"child_id"`
	RequestType   string  `json:"request_type"`
	Status        string  `json:"status"`
	PointsAwarded int     `json:"points_awarded"`
	CompletedBy   *string `json:"completed_by,omitempty"`
	CreatedAt     int64   `json:"created_at"`
	CompletedAt   *int64  `json:"completed_at,omitempty"`
}

package response_models

type ChildResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Age         *int   `json:"age,omitempty"`
	TotalPoints int    `json:"total_points"`
	CreatedAt   int64  `json:"created_at"`
}

package response_models

type PointBalance struct {
	TotalEarned int `json:"total_earned"`
	TotalSpent  int `json:"total_spent"`
	Balance     int `json:"balance"`
}

type DashboardResponse struct {
	Child           ChildResponse             `json:"child"`
	Points          PointBalance              `json:"points"`
	PendingRequests []BathroomRequestResponse `json:"pending_requests"`
	RecentHistory   []BathroomRequestResponse `json:"recent_history"`
	RedemptionCount int64                     `json:"redemption_count"`
}

package response_models

type CaregiverResponse struct {
	ID                   string   `json:"id"`
	ChildID              string   `json:"child_id"`
	Name                 string   `json:"name"`
	Email                *string  `json:"email,omitempty"`
	Phone                *string  `json:"phone,omitempty"`
	ReceiveNotifications bool     `json:"receive_notifications"`
	NotificationTypes    []string `json:"notification_types,omitempty"`
	CreatedAt            int64    `json:"created_at"`
}

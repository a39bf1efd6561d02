package request_models

type CaregiverInput struct {
	Name                 string   `json:"name" binding:"required"`
	Email                *string  `json:"email"`
	Phone                *string  `json:"phone"`
	ReceiveNotifications bool     `json:"receive_notifications"`
	NotificationTypes    []string `json:"notification_types"`
}

type OnboardChildRequest struct {
	ChildName  string           `json:"child_name" binding:"required"`
	ChildAge   *int             `json:"child_age"`
	Passcode   string           `json:"passcode" binding:"required"`
	Caregivers []CaregiverInput `json:"caregivers" binding:"required,min=1"`
}

type VerifyPasscodeRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

type ChangePasscodeRequest struct {
	NewPasscode string `json:"new_passcode" binding:"required"`
}

type AdjustPointsRequest struct {
	TotalPoints *int `json:"total_points" binding:"required"`
}

type AddPointsRequest struct {
	Points *int `json:"points" binding:"required"`
}

package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	NotifTypeNewRequest     = "new_request"
	NotifTypeRewardRedeemed = "reward_redeemed"
	NotifTypePointsAdjusted = "points_adjusted"
)

type Caregiver struct {
	BaseModel
	ChildID              uuid.UUID `gorm:"index"`
	Name                 string
	Email                *string
	Phone                *string
	ReceiveNotifications bool           `gorm:"default:true"`
	NotificationTypes    pq.StringArray `gorm:"type:text[]"`
	// Raw web-push subscription blob, opaque to the backend.
	PushSubscription datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Child Child `gorm:"foreignKey:ChildID"`
}

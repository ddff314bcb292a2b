package notify

import (
	"time"

	"github.com/google/uuid"
)

// NotificationDTO is an in-app inbox row. Clients poll or stream these; the
// dispatch engine only ever inserts.
type NotificationDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title     string     `gorm:"type:varchar(255);not null"`
	Message   string     `gorm:"type:text;not null"`
	Type      string     `gorm:"type:varchar(32);not null"`
	OrderID   *uuid.UUID `gorm:"type:uuid"`
	IsRead    bool       `gorm:"not null"`
	CreatedAt time.Time
}

// TableName specifies the database table name for in-app notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// Package notificationrepo persists per-driver notification dedup records.
// One row per (order, driver, phase) caps notifications at one per driver per
// search phase, across restarts and concurrent fanouts.
package notificationrepo

import (
	"time"

	"github.com/google/uuid"
)

// DriverNotificationDTO records that a driver was notified about an order in
// a given search phase. The composite primary key is the dedup constraint.
type DriverNotificationDTO struct {
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phase    string    `gorm:"type:varchar(32);primaryKey"`
	SentAt   time.Time `gorm:"not null"`
}

// TableName specifies the database table name for notification dedup records.
func (DriverNotificationDTO) TableName() string {
	return "driver_notifications"
}

package notificationrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.NotificationRecordRepository = &GormNotificationRecordRepository{}

// GormNotificationRecordRepository implements the notification dedup store
// using GORM. The insert races on the composite primary key; ON CONFLICT
// DO NOTHING makes the loser a clean no-op.
type GormNotificationRecordRepository struct {
	db *gorm.DB
}

// NewGormNotificationRecordRepository creates a repository bound to the given
// DB handle, which may be a transaction.
func NewGormNotificationRecordRepository(db *gorm.DB) *GormNotificationRecordRepository {
	return &GormNotificationRecordRepository{db: db}
}

// CreateIfAbsent inserts the dedup record and reports whether this call
// created it. False means the driver was already notified for this order and
// phase, and the caller must not send again.
func (r *GormNotificationRecordRepository) CreateIfAbsent(
	ctx context.Context,
	orderID kernel.UUID,
	driverID kernel.UUID,
	phase order.SearchStatus,
) (bool, error) {
	if err := phase.Validate(); err != nil {
		return false, err
	}
	if phase == order.SearchNotStarted {
		return false, errs.NewValueIsInvalidError("phase")
	}

	dto := DriverNotificationDTO{
		OrderID:  orderID.Bytes(),
		DriverID: driverID.Bytes(),
		Phase:    phase.String(),
		SentAt:   time.Now().UTC(),
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// CreateIfNeverNotified inserts the dedup record only when the driver has no
// record for this order in any phase, in one statement so two racing fanouts
// still agree on a single winner. The expanded fanout uses this form: a
// driver notified while searching already knows about the order.
func (r *GormNotificationRecordRepository) CreateIfNeverNotified(
	ctx context.Context,
	orderID kernel.UUID,
	driverID kernel.UUID,
	phase order.SearchStatus,
) (bool, error) {
	if err := phase.Validate(); err != nil {
		return false, err
	}
	if phase == order.SearchNotStarted {
		return false, errs.NewValueIsInvalidError("phase")
	}

	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO driver_notifications (order_id, driver_id, phase, sent_at)
		 SELECT ?, ?, ?, ?
		  WHERE NOT EXISTS (
		        SELECT 1 FROM driver_notifications WHERE order_id = ? AND driver_id = ?)
		 ON CONFLICT DO NOTHING`,
		orderID.Bytes(), driverID.Bytes(), phase.String(), time.Now().UTC(),
		orderID.Bytes(), driverID.Bytes())
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

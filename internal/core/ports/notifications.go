package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// NotificationRecordRepository persists per-phase fanout dedup records.
type NotificationRecordRepository interface {
	// CreateIfAbsent records that the driver was notified about the order in
	// the given search phase. Returns false when a record for the same
	// (order, driver, phase) triple already exists; the insert itself is
	// conflict-tolerant, so two racing fanouts agree on a single winner.
	CreateIfAbsent(ctx context.Context, orderID, driverID kernel.UUID, phase order.SearchStatus) (bool, error)

	// CreateIfNeverNotified records the phase notification only when the
	// driver holds no record for this order in any phase. The expanded fanout
	// uses this form so drivers already notified while searching are not
	// notified a second time when the radius widens. Returns false when any
	// prior record exists.
	CreateIfNeverNotified(ctx context.Context, orderID, driverID kernel.UUID, phase order.SearchStatus) (bool, error)
}

// NotificationSender delivers user-facing notifications. Delivery is
// best-effort and at-most-once: a failure is reported to the caller for
// logging but never retried and never rolls back the surrounding write.
type NotificationSender interface {
	// SendInApp stores an inbox notification for the user.
	SendInApp(ctx context.Context, userID kernel.UUID, title, message, notificationType string, orderID *kernel.UUID) error

	// SendPush delivers a push notification to the user's registered devices.
	SendPush(ctx context.Context, userID kernel.UUID, title, message string) error
}

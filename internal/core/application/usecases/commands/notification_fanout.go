package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

const (
	driverNotificationTitle   = "New delivery request"
	driverNotificationMessage = "An order near you is looking for a driver"
	driverNotificationType    = "dispatch"

	noDriverNotificationTitle   = "No driver found"
	noDriverNotificationMessage = "We could not find a driver for your order. You can restart the search or cancel."
	noDriverNotificationType    = "search"
)

// NotificationFanout notifies the candidates of a search phase, at most once
// per (order, driver, phase). The expanded phase dedups harder: a driver
// already notified while searching is inside the wider ring too and is not
// notified again.
//
// The dedup record is written and committed before anything is sent: delivery
// is at-most-once, and a crash between commit and send loses that
// notification rather than ever duplicating it. Send failures are logged and
// swallowed; a slow or broken sender must not fail the phase transition that
// triggered the fanout.
type NotificationFanout struct {
	uowFactory NotificationUoWFactory
	sender     ports.NotificationSender
	logger     *slog.Logger
}

// NewNotificationFanout creates a fanout bound to the given sender.
func NewNotificationFanout(
	uowFactory NotificationUoWFactory,
	sender ports.NotificationSender,
	logger *slog.Logger,
) NotificationFanout {
	return NotificationFanout{
		uowFactory: uowFactory,
		sender:     sender,
		logger:     logger.With("component", "notification_fanout"),
	}
}

// NotifyDrivers sends the phase notification to every candidate not yet
// recorded for this (order, phase); in the expanded phase, candidates
// recorded in any earlier phase are skipped as well. Returns the number of
// drivers newly notified. A dedup write failure aborts the loop; send
// failures do not.
func (f NotificationFanout) NotifyDrivers(
	ctx context.Context,
	orderID kernel.UUID,
	candidates []services.DriverCandidate,
	phase order.SearchStatus,
) (int, error) {
	sent := 0

	for _, candidate := range candidates {
		created, err := f.recordNotification(ctx, orderID, candidate.DriverID, phase)
		if err != nil {
			return sent, err
		}
		if !created {
			continue
		}

		orderRef := orderID
		if err := f.sender.SendInApp(ctx, candidate.DriverID,
			driverNotificationTitle, driverNotificationMessage,
			driverNotificationType, &orderRef); err != nil {
			f.logger.WarnContext(ctx, "in-app notification failed",
				"order_id", orderID.String(),
				"driver_id", candidate.DriverID.String(),
				"error", err)
		}

		if err := f.sender.SendPush(ctx, candidate.DriverID,
			driverNotificationTitle, driverNotificationMessage); err != nil {
			f.logger.WarnContext(ctx, "push notification failed",
				"order_id", orderID.String(),
				"driver_id", candidate.DriverID.String(),
				"error", err)
		}

		sent++
	}

	return sent, nil
}

// NotifyCustomerNoDriver tells the customer the search stopped without a
// claim. Best-effort: failures are logged, never propagated.
func (f NotificationFanout) NotifyCustomerNoDriver(ctx context.Context, customerID, orderID kernel.UUID) {
	orderRef := orderID
	if err := f.sender.SendInApp(ctx, customerID,
		noDriverNotificationTitle, noDriverNotificationMessage,
		noDriverNotificationType, &orderRef); err != nil {
		f.logger.WarnContext(ctx, "in-app notification failed",
			"order_id", orderID.String(),
			"customer_id", customerID.String(),
			"error", err)
	}

	if err := f.sender.SendPush(ctx, customerID,
		noDriverNotificationTitle, noDriverNotificationMessage); err != nil {
		f.logger.WarnContext(ctx, "push notification failed",
			"order_id", orderID.String(),
			"customer_id", customerID.String(),
			"error", err)
	}
}

// recordNotification commits the dedup record in its own short transaction so
// the at-most-once guarantee survives later failures in the same phase.
func (f NotificationFanout) recordNotification(
	ctx context.Context,
	orderID, driverID kernel.UUID,
	phase order.SearchStatus,
) (bool, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	records := uow.NotificationRecordRepository()

	var created bool
	var err error
	if phase == order.SearchExpanded {
		created, err = records.CreateIfNeverNotified(ctx, orderID, driverID, phase)
	} else {
		created, err = records.CreateIfAbsent(ctx, orderID, driverID, phase)
	}
	if err != nil {
		return false, err
	}

	if err := uow.Commit(ctx); err != nil {
		return false, err
	}

	return created, nil
}

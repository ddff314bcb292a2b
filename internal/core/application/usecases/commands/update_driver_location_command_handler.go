package commands

import (
	"context"
	"log/slog"
	"time"
)

// UpdateDriverLocationCommandHandler persists a driver's reported GPS fix
// with the current server time as its timestamp.
type UpdateDriverLocationCommandHandler struct {
	uowFactory DriverUoWFactory
	now        func() time.Time
	logger     *slog.Logger
}

// NewUpdateDriverLocationCommandHandler creates a handler for driver location
// reports.
func NewUpdateDriverLocationCommandHandler(
	uowFactory DriverUoWFactory,
	now func() time.Time,
	logger *slog.Logger,
) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{
		uowFactory: uowFactory,
		now:        now,
		logger:     logger.With("component", "update_driver_location"),
	}
}

// Handle records the fix.
func (h UpdateDriverLocationCommandHandler) Handle(ctx context.Context, command UpdateDriverLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return withPersistRetry(ctx, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		driversRepo := uow.DriverRepository()
		aggregate, err := driversRepo.Get(ctx, command.DriverID())
		if err != nil {
			return err
		}

		if err := aggregate.UpdateLocation(command.Point(), h.now()); err != nil {
			return err
		}

		if err := driversRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}

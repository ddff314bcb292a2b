package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels a pending order. Claimed orders are
// rejected with errs.ErrInvalidState. The write is a guarded update keyed on
// pending-and-unassigned, so a claim that commits between the read and the
// write wins the race and the cancel is rejected instead of erasing it.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellations.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "cancel_order"),
	}
}

// Handle cancels the order.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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

		ordersRepo := uow.OrderRepository()
		aggregate, err := ordersRepo.Get(ctx, command.OrderID())
		if err != nil {
			return err
		}

		if err := aggregate.Cancel(); err != nil {
			return err
		}

		cancelled, err := ordersRepo.MarkCancelled(ctx, command.OrderID())
		if err != nil {
			return err
		}
		if !cancelled {
			current, getErr := ordersRepo.Get(ctx, command.OrderID())
			if getErr != nil {
				return getErr
			}
			return errs.NewInvalidStateError("cancel order", current.Status().String())
		}

		if err := uow.Commit(ctx); err != nil {
			return err
		}

		h.logger.InfoContext(ctx, "order cancelled", "order_id", command.OrderID().String())
		return nil
	})
}

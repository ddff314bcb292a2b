package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AcceptOrderCommandHandler arbitrates concurrent claim attempts on an order.
//
// The claim itself is a single conditional update in the order repository:
// whichever driver's UPDATE matches the pending, unassigned row wins, and
// everyone else sees a conflict. No lock is held across the decision, so N
// simultaneous accepts cost N row lookups and exactly one row write.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewAcceptOrderCommandHandler creates a handler for driver claim attempts.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "accept_order"),
	}
}

// Handle attempts the claim. The losing driver gets errs.ErrConflict, a claim
// on an unclaimable order errs.ErrInvalidState, and an unknown order
// errs.ErrObjectNotFound.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) error {
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

		// The driver must exist before we touch the order row.
		if _, err := uow.DriverRepository().Get(ctx, command.DriverID()); err != nil {
			return err
		}

		ordersRepo := uow.OrderRepository()
		outcome, err := ordersRepo.TryAssign(ctx, command.OrderID(), command.DriverID())
		if err != nil {
			return err
		}

		switch outcome {
		case ports.AssignOutcomeAssigned:
			// fall through to commit
		case ports.AssignOutcomeAlreadyAssigned:
			return errs.NewConflictError("order", command.OrderID().String())
		case ports.AssignOutcomeNotAvailable:
			aggregate, getErr := ordersRepo.Get(ctx, command.OrderID())
			if getErr != nil {
				return getErr
			}
			return errs.NewInvalidStateError("accept", aggregate.Status().String())
		default:
			return errs.NewValueIsInvalidError("assign outcome")
		}

		if err := uow.Commit(ctx); err != nil {
			return err
		}

		h.logger.InfoContext(ctx, "order claimed",
			"order_id", command.OrderID().String(),
			"driver_id", command.DriverID().String())
		return nil
	})
}

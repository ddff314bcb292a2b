package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// StartSearchCommandHandler opens the search session for a pending order and
// runs the phase-one fanout.
//
// The session write and the candidate query run in one transaction holding the
// order's search advisory lock, so a concurrent restart or sweep of the same
// order serializes behind it. The fanout runs after commit: once the deadline
// is durable, losing a notification is acceptable, duplicating a session is
// not.
type StartSearchCommandHandler struct {
	uowFactory UoWFactory
	geocoder   ports.Geocoder
	fanout     NotificationFanout
	settings   DispatchSettings
	now        func() time.Time
	logger     *slog.Logger
}

// NewStartSearchCommandHandler creates a handler for opening search sessions.
// now is the clock used for session timestamps; pass time.Now in production.
func NewStartSearchCommandHandler(
	uowFactory UoWFactory,
	geocoder ports.Geocoder,
	fanout NotificationFanout,
	settings DispatchSettings,
	now func() time.Time,
	logger *slog.Logger,
) StartSearchCommandHandler {
	return StartSearchCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		fanout:     fanout,
		settings:   settings,
		now:        now,
		logger:     logger.With("component", "start_search"),
	}
}

// Handle opens the session and notifies phase-one candidates.
func (h StartSearchCommandHandler) Handle(ctx context.Context, command StartSearchCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	candidates, err := h.startSearch(ctx, command.OrderID(), command.OriginHint(), false)
	if err != nil {
		return err
	}

	sent, err := h.fanout.NotifyDrivers(ctx, command.OrderID(), candidates, order.Searching)
	if err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "search started",
		"order_id", command.OrderID().String(),
		"candidates", len(candidates),
		"notified", sent)
	return nil
}

// startSearch runs the transactional part of opening a session and returns
// the phase-one candidates. When requireStopped is set, only a stopped
// session may be reopened (the restart path).
func (h StartSearchCommandHandler) startSearch(
	ctx context.Context,
	orderID kernel.UUID,
	originHint *kernel.GeoPoint,
	requireStopped bool,
) ([]services.DriverCandidate, error) {
	var candidates []services.DriverCandidate

	err := withPersistRetry(ctx, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		ordersRepo := uow.OrderRepository()
		if err := ordersRepo.LockSearch(ctx, orderID); err != nil {
			return err
		}

		aggregate, err := ordersRepo.Get(ctx, orderID)
		if err != nil {
			return err
		}

		if requireStopped && aggregate.SearchStatus() != order.SearchStopped {
			return errs.NewInvalidStateError("restart search", aggregate.SearchStatus().String())
		}

		origin, err := h.resolveOrigin(ctx, aggregate, originHint)
		if err != nil {
			return err
		}

		now := h.now()
		if err := aggregate.StartSearch(origin, now, h.settings.InitialDuration); err != nil {
			return err
		}

		// The guarded update re-checks the precondition at write time: a
		// claim committed after the read above makes it a no-op instead of
		// being overwritten.
		opened, err := ordersRepo.OpenSearch(ctx, orderID, origin, now,
			now.Add(h.settings.InitialDuration))
		if err != nil {
			return err
		}
		if !opened {
			current, getErr := ordersRepo.Get(ctx, orderID)
			if getErr != nil {
				return getErr
			}
			return errs.NewInvalidStateError("start search", current.Status().String())
		}

		drivers, err := uow.DriverRepository().QueryNear(ctx, origin,
			h.settings.InitialRadiusKm, now, h.settings.MaxLocationAge)
		if err != nil {
			return err
		}

		candidates, err = services.NewGeoIndex().SelectCandidates(origin, drivers,
			h.settings.InitialRadiusKm, now, h.settings.MaxLocationAge)
		if err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return candidates, nil
}

// resolveOrigin picks the search origin: the caller's hint when present,
// otherwise the origin waypoint's coordinates, geocoding its address when the
// coordinates were never resolved.
func (h StartSearchCommandHandler) resolveOrigin(
	ctx context.Context,
	aggregate *order.Order,
	originHint *kernel.GeoPoint,
) (kernel.GeoPoint, error) {
	if originHint != nil {
		return *originHint, nil
	}

	waypoint, err := aggregate.OriginWaypoint()
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	if point := waypoint.Point(); point != nil {
		return *point, nil
	}

	return h.geocoder.Geocode(ctx, waypoint.Address())
}

package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

const (
	// dueBatchLimit caps how many due sessions one sweep loads.
	dueBatchLimit = 100
	// sweepParallelism caps concurrent per-order processing within a sweep.
	sweepParallelism = 8
)

// ProcessDueSearchesCommandHandler advances search sessions past their
// deadline: searching sessions expand with a wider radius, expanded sessions
// stop and the customer hears about it.
//
// Deadlines live on the order row, so this sweep is the whole scheduler:
// restarts lose no timers, and a missed tick only delays a transition until
// the next sweep. Each transition is a conditional update guarded by the
// current phase and the elapsed deadline, which makes overlapping sweeps and
// claim races collapse to no-ops.
type ProcessDueSearchesCommandHandler struct {
	uowFactory UoWFactory
	geocoder   ports.Geocoder
	fanout     NotificationFanout
	settings   DispatchSettings
	now        func() time.Time
	logger     *slog.Logger
}

// NewProcessDueSearchesCommandHandler creates a handler for deadline sweeps.
func NewProcessDueSearchesCommandHandler(
	uowFactory UoWFactory,
	geocoder ports.Geocoder,
	fanout NotificationFanout,
	settings DispatchSettings,
	now func() time.Time,
	logger *slog.Logger,
) ProcessDueSearchesCommandHandler {
	return ProcessDueSearchesCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		fanout:     fanout,
		settings:   settings,
		now:        now,
		logger:     logger.With("component", "process_due_searches"),
	}
}

// Handle loads due sessions and processes them with bounded parallelism.
// Per-order failures are logged and skipped; the next sweep retries them.
func (h ProcessDueSearchesCommandHandler) Handle(ctx context.Context, command ProcessDueSearchesCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	due, err := h.loadDue(ctx)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, sweepParallelism)

	for _, aggregate := range due {
		wg.Add(1)
		sem <- struct{}{}

		go func(aggregate *order.Order) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := h.processOrder(ctx, aggregate); err != nil {
				h.logger.ErrorContext(ctx, "due search processing failed",
					"order_id", aggregate.ID().String(),
					"search_status", aggregate.SearchStatus().String(),
					"error", err)
			}
		}(aggregate)
	}

	wg.Wait()
	return nil
}

func (h ProcessDueSearchesCommandHandler) loadDue(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	due, err := uow.OrderRepository().GetDueSearches(ctx, h.now(), dueBatchLimit)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return due, nil
}

func (h ProcessDueSearchesCommandHandler) processOrder(ctx context.Context, aggregate *order.Order) error {
	switch aggregate.SearchStatus() {
	case order.Searching:
		return h.expand(ctx, aggregate)
	case order.SearchExpanded:
		return h.stop(ctx, aggregate)
	default:
		// The row changed between load and processing; nothing to do.
		return nil
	}
}

// expand advances a due searching session to the expanded phase and notifies
// the wider candidate ring. The conditional update decides the race: when it
// matches no row the session was claimed, cancelled, or already expanded by a
// concurrent sweep, and this call does nothing.
func (h ProcessDueSearchesCommandHandler) expand(ctx context.Context, aggregate *order.Order) error {
	var candidates []services.DriverCandidate

	advanced := false
	err := withPersistRetry(ctx, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		ordersRepo := uow.OrderRepository()
		if err := ordersRepo.LockSearch(ctx, aggregate.ID()); err != nil {
			return err
		}

		now := h.now()
		ok, err := ordersRepo.AdvanceSearchToExpanded(ctx, aggregate.ID(), now,
			now.Add(h.settings.ExpandedDuration))
		if err != nil {
			return err
		}
		if !ok {
			advanced = false
			return uow.Commit(ctx)
		}
		advanced = true

		// Origin resolution never holds the session hostage: without an
		// origin the phase still advances, the session reaches stopped on
		// schedule, and only this fanout is skipped.
		origin, originErr := h.resolveOrigin(ctx, aggregate)
		if originErr != nil {
			h.logger.WarnContext(ctx, "expanding without fanout, origin unresolved",
				"order_id", aggregate.ID().String(),
				"error", originErr)
			candidates = nil
			return uow.Commit(ctx)
		}

		drivers, err := uow.DriverRepository().QueryNear(ctx, origin,
			h.settings.ExpandedRadiusKm, now, h.settings.MaxLocationAge)
		if err != nil {
			return err
		}

		candidates, err = services.NewGeoIndex().SelectCandidates(origin, drivers,
			h.settings.ExpandedRadiusKm, now, h.settings.MaxLocationAge)
		if err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
	if err != nil || !advanced {
		return err
	}

	sent, err := h.fanout.NotifyDrivers(ctx, aggregate.ID(), candidates, order.SearchExpanded)
	if err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "search expanded",
		"order_id", aggregate.ID().String(),
		"candidates", len(candidates),
		"notified", sent)
	return nil
}

// stop terminates a due expanded session and tells the customer no driver was
// found. Same no-match semantics as expand.
func (h ProcessDueSearchesCommandHandler) stop(ctx context.Context, aggregate *order.Order) error {
	stopped := false
	err := withPersistRetry(ctx, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		ordersRepo := uow.OrderRepository()
		if err := ordersRepo.LockSearch(ctx, aggregate.ID()); err != nil {
			return err
		}

		ok, err := ordersRepo.MarkSearchStopped(ctx, aggregate.ID(), h.now())
		if err != nil {
			return err
		}
		stopped = ok

		return uow.Commit(ctx)
	})
	if err != nil || !stopped {
		return err
	}

	h.fanout.NotifyCustomerNoDriver(ctx, aggregate.CustomerID(), aggregate.ID())

	h.logger.InfoContext(ctx, "search stopped",
		"order_id", aggregate.ID().String())
	return nil
}

// resolveOrigin prefers the origin the session persisted at start, so the
// widened ring is centered where the first one was. The waypoint and geocoder
// fallbacks cover rows that predate the stored point.
func (h ProcessDueSearchesCommandHandler) resolveOrigin(ctx context.Context, aggregate *order.Order) (kernel.GeoPoint, error) {
	if point := aggregate.SearchPoint(); point != nil {
		return *point, nil
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

package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
)

// RestartSearchCommandHandler reopens a stopped search session. It shares the
// transactional start path with StartSearchCommandHandler, adding the
// precondition that the previous session has stopped; the advisory lock makes
// a restart racing the stopping sweep serialize instead of interleave.
type RestartSearchCommandHandler struct {
	starter StartSearchCommandHandler
	logger  *slog.Logger
}

// NewRestartSearchCommandHandler creates a handler for search restarts.
func NewRestartSearchCommandHandler(starter StartSearchCommandHandler, logger *slog.Logger) RestartSearchCommandHandler {
	return RestartSearchCommandHandler{
		starter: starter,
		logger:  logger.With("component", "restart_search"),
	}
}

// Handle reopens the session and notifies phase-one candidates. Dedup records
// are keyed per (order, driver, phase), so drivers already notified in the
// previous session's searching phase are not notified again on restart.
func (h RestartSearchCommandHandler) Handle(ctx context.Context, command RestartSearchCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	candidates, err := h.starter.startSearch(ctx, command.OrderID(), nil, true)
	if err != nil {
		return err
	}

	sent, err := h.starter.fanout.NotifyDrivers(ctx, command.OrderID(), candidates, order.Searching)
	if err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "search restarted",
		"order_id", command.OrderID().String(),
		"candidates", len(candidates),
		"notified", sent)
	return nil
}

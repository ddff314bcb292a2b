package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartSearchCommandIsNotConstructed = errors.New(
	"StartSearchCommand must be created via NewStartSearchCommand constructor",
)

// StartSearchCommand opens the driver-search session for a pending order.
// An optional origin hint overrides the waypoint-derived search origin; it is
// used when the client already holds resolved coordinates and saves a
// geocoder round trip.
type StartSearchCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	originHint *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewStartSearchCommand creates a command to open the search session for the
// given order. originHint may be nil.
func NewStartSearchCommand(orderID kernel.UUID, originHint *kernel.GeoPoint) (StartSearchCommand, error) {
	command := StartSearchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setOriginHint(originHint),
	); err != nil {
		return StartSearchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartSearchCommand) Validate() error {
	return c.guard.Validate(ErrStartSearchCommandIsNotConstructed)
}

// OrderID returns the order whose search session should start.
func (c StartSearchCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OriginHint returns the caller-supplied search origin, or nil.
func (c StartSearchCommand) OriginHint() *kernel.GeoPoint {
	return c.originHint
}

func (c *StartSearchCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartSearchCommand) setOriginHint(originHint *kernel.GeoPoint) error {
	if originHint == nil {
		return nil
	}
	if err := originHint.Validate(); err != nil {
		return err
	}

	hint := *originHint
	c.originHint = &hint
	return nil
}

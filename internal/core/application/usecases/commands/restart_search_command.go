package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRestartSearchCommandIsNotConstructed = errors.New(
	"RestartSearchCommand must be created via NewRestartSearchCommand constructor",
)

// RestartSearchCommand reopens a stopped search session at the customer's
// request. Restarting an active session is rejected.
type RestartSearchCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRestartSearchCommand creates a command to restart the search for the
// given order.
func NewRestartSearchCommand(orderID kernel.UUID) (RestartSearchCommand, error) {
	command := RestartSearchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return RestartSearchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RestartSearchCommand) Validate() error {
	return c.guard.Validate(ErrRestartSearchCommandIsNotConstructed)
}

// OrderID returns the order whose search session should restart.
func (c RestartSearchCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RestartSearchCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

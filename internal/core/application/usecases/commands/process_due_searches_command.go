package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrProcessDueSearchesCommandIsNotConstructed = errors.New(
	"ProcessDueSearchesCommand must be created via NewProcessDueSearchesCommand constructor",
)

// ProcessDueSearchesCommand triggers one sweep over search sessions whose
// deadline has passed. The scheduler job fires it every second; it is safe to
// fire concurrently or redundantly because every transition it performs is a
// guarded conditional write.
type ProcessDueSearchesCommand struct {
	guard guard.ConstructorGuard
}

// NewProcessDueSearchesCommand creates a command to sweep due search sessions.
func NewProcessDueSearchesCommand() ProcessDueSearchesCommand {
	return ProcessDueSearchesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ProcessDueSearchesCommand) Validate() error {
	return c.guard.Validate(ErrProcessDueSearchesCommandIsNotConstructed)
}

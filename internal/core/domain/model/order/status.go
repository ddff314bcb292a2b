package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the delivery lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Accepted ──> PickedUp ──> InTransit ──> Completed
//	   │
//	   └──────> Cancelled
//
// A driver is bound to the order exactly when the status is Accepted or later
// (excluding Cancelled); Pending and Cancelled orders never carry a driver.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status: the order is waiting for a driver.
	// Dispatch search is meaningful only in this status.
	Pending

	// Accepted indicates a driver has claimed the order.
	Accepted

	// PickedUp indicates the driver has collected the package.
	PickedUp

	// InTransit indicates the package is on its way to the destination.
	InTransit

	// Completed indicates the order has been delivered. Final state.
	Completed

	// Cancelled indicates the customer cancelled the order before a driver
	// claimed it. Final state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Pending:       "pending",
		Accepted:      "accepted",
		PickedUp:      "pickedUp",
		InTransit:     "inTransit",
		Completed:     "completed",
		Cancelled:     "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Accepted:  "accepted",
		PickedUp:  "pickedUp",
		InTransit: "inTransit",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses the persisted representation of a status.
// Returns an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted/wire name of the status.
// Implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled
}

// ValidateAccept checks that a driver may claim an order in this status
// without performing the transition. Only Pending orders can be claimed.
func (s Status) ValidateAccept() error {
	if s != Pending {
		return errs.NewInvalidStateError("accept", s.String())
	}
	return nil
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver assignment: a driver is bound exactly when the status is Accepted,
// PickedUp, InTransit, or Completed.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	assignedState := s == Accepted || s == PickedUp || s == InTransit || s == Completed

	if hasDriver && !assignedState {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()))
	}

	if !hasDriver && assignedState {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()))
	}

	return nil
}

// Accept transitions Pending to Accepted.
func (s Status) Accept() (Status, error) {
	if err := s.ValidateAccept(); err != nil {
		return 0, err
	}

	return Accepted, nil
}

// Cancel transitions Pending to Cancelled. Orders already claimed by a driver
// cannot be cancelled through the dispatch engine.
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("cancel", s.String())
	}

	return Cancelled, nil
}

// PickUp transitions Accepted to PickedUp.
func (s Status) PickUp() (Status, error) {
	if s != Accepted {
		return 0, errs.NewInvalidStateError("pick up", s.String())
	}

	return PickedUp, nil
}

// Transit transitions PickedUp to InTransit.
func (s Status) Transit() (Status, error) {
	if s != PickedUp {
		return 0, errs.NewInvalidStateError("transit", s.String())
	}

	return InTransit, nil
}

// Complete transitions InTransit to Completed.
func (s Status) Complete() (Status, error) {
	if s != InTransit {
		return 0, errs.NewInvalidStateError("complete", s.String())
	}

	return Completed, nil
}

package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrWaypointIsNotConstructed is returned when using an improperly
// initialized Waypoint.
var ErrWaypointIsNotConstructed = errors.New(
	"Waypoint must be created via NewWaypoint or RestoreWaypoint constructors")

// Waypoint is one stop on an order's route: a human-entered address,
// optionally resolved coordinates, and a fulfilled flag set as the driver
// completes stops. Waypoints are ordered; the first one is the pickup for
// point-to-point orders.
type Waypoint struct { //nolint:recvcheck //using for validation
	address   string
	point     *kernel.GeoPoint
	fulfilled bool
	guard     guard.ConstructorGuard
}

// NewWaypoint creates an unfulfilled waypoint. The address is required;
// coordinates are optional and may be resolved later by the geocoder.
func NewWaypoint(address string, point *kernel.GeoPoint) (Waypoint, error) {
	return RestoreWaypoint(address, point, false)
}

// RestoreWaypoint reconstructs a waypoint from persistent storage,
// including its fulfilled flag.
func RestoreWaypoint(address string, point *kernel.GeoPoint, fulfilled bool) (Waypoint, error) {
	waypoint := Waypoint{
		fulfilled: fulfilled,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		waypoint.setAddress(address),
		waypoint.setPoint(point),
	); err != nil {
		return Waypoint{}, err
	}

	return waypoint, nil
}

// Validate checks that the Waypoint was created through a constructor.
func (w Waypoint) Validate() error {
	return w.guard.Validate(ErrWaypointIsNotConstructed)
}

// Address returns the human-entered address of the stop.
func (w Waypoint) Address() string {
	return w.address
}

// Point returns the resolved coordinates, or nil when the address has not
// been geocoded.
func (w Waypoint) Point() *kernel.GeoPoint {
	return w.point
}

// IsFulfilled reports whether the driver has completed this stop.
func (w Waypoint) IsFulfilled() bool {
	return w.fulfilled
}

// String implements fmt.Stringer.
func (w Waypoint) String() string {
	return fmt.Sprintf("Waypoint(%q, fulfilled=%t)", w.address, w.fulfilled)
}

func (w *Waypoint) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("waypoint address")
	}

	w.address = address
	return nil
}

func (w *Waypoint) setPoint(point *kernel.GeoPoint) error {
	if point != nil {
		if err := point.Validate(); err != nil {
			return err
		}
		p := *point
		w.point = &p
	}
	return nil
}

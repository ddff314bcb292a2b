package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")

	// ErrNoSearchOrigin is returned when no waypoint can serve as the search
	// origin for a dispatch session.
	ErrNoSearchOrigin = errors.New("order has no usable waypoint to search from")
)

// Order is the aggregate root for a delivery order and its driver-search
// session. The dispatch engine owns the search fields and, through the
// assignment arbiter, the status/driver pair; no other component writes them
// while the order is pending.
//
// Invariants:
//   - a driver is bound exactly when the status is Accepted or later
//     (see Status.ValidateCanHaveDriver)
//   - the search phase is meaningful only while the status is Pending
//   - the phase never regresses and never skips expansion on the way to
//     stopped (see SearchStatus)
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the customer who placed the order
	customerID kernel.UUID

	// driverID is the claimed driver's ID (nil while unassigned)
	driverID *kernel.UUID

	// orderType determines the search-origin policy
	orderType Type

	// status is the delivery lifecycle state
	status Status

	// searchStatus is the phase of the driver-search session
	searchStatus SearchStatus

	// searchStartedAt/searchExpiresAt/searchExpandedAt are the session
	// bookkeeping timestamps; searchExpiresAt doubles as the durable
	// scheduler deadline
	searchStartedAt  *time.Time
	searchExpiresAt  *time.Time
	searchExpandedAt *time.Time

	// searchPoint is the origin the session resolved at start; the expanded
	// phase queries from the same point instead of re-resolving it
	searchPoint *kernel.GeoPoint

	// waypoints is the ordered route; first is the pickup for package orders
	waypoints []Waypoint

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a pending order with no search session started.
// The waypoint list must not be empty; package orders conventionally carry a
// pickup waypoint followed by a delivery waypoint.
func NewOrder(id, customerID kernel.UUID, orderType Type, waypoints []Waypoint) (*Order, error) {
	return RestoreOrder(id, customerID, nil, orderType, Pending, SearchNotStarted, nil, nil, nil, nil, waypoints)
}

// RestoreOrder reconstructs an order aggregate from persistent storage and
// re-validates its invariants, including status/driver consistency.
func RestoreOrder(
	id, customerID kernel.UUID,
	driverID *kernel.UUID,
	orderType Type,
	status Status,
	searchStatus SearchStatus,
	searchStartedAt, searchExpiresAt, searchExpandedAt *time.Time,
	searchPoint *kernel.GeoPoint,
	waypoints []Waypoint,
) (*Order, error) {
	order := &Order{
		status:           status,
		searchStatus:     searchStatus,
		searchStartedAt:  copyTime(searchStartedAt),
		searchExpiresAt:  copyTime(searchExpiresAt),
		searchExpandedAt: copyTime(searchExpandedAt),
		searchPoint:      copyPoint(searchPoint),
		isConstructed:    true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setDriverID(driverID),
		order.setType(orderType),
		status.Validate(),
		searchStatus.Validate(),
		status.ValidateCanHaveDriver(driverID != nil),
		order.setWaypoints(waypoints),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Driver returns the claimed driver's ID, or nil while unassigned.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Type returns the order category.
func (o *Order) Type() Type {
	return o.orderType
}

// Status returns the delivery lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// SearchStatus returns the phase of the driver-search session.
func (o *Order) SearchStatus() SearchStatus {
	return o.searchStatus
}

// SearchStartedAt returns when the current session started, or nil.
func (o *Order) SearchStartedAt() *time.Time {
	return copyTime(o.searchStartedAt)
}

// SearchExpiresAt returns the deadline of the current phase, or nil. The
// scheduler sweep fires phase transitions when this passes.
func (o *Order) SearchExpiresAt() *time.Time {
	return copyTime(o.searchExpiresAt)
}

// SearchExpandedAt returns when the session entered the expanded phase, or nil.
func (o *Order) SearchExpandedAt() *time.Time {
	return copyTime(o.searchExpandedAt)
}

// SearchPoint returns the origin the current session searches from, or nil
// when no session was ever started.
func (o *Order) SearchPoint() *kernel.GeoPoint {
	return copyPoint(o.searchPoint)
}

// Waypoints returns the ordered route.
func (o *Order) Waypoints() []Waypoint {
	waypoints := make([]Waypoint, len(o.waypoints))
	copy(waypoints, o.waypoints)
	return waypoints
}

// OriginWaypoint resolves the waypoint the driver search originates from.
//
// Policy: multi-stop orders search from the first unfulfilled waypoint;
// package orders always search from the pickup (first) waypoint; the
// delivery address is never a search origin. A waypoint is usable when it has
// an address or resolved coordinates. Returns ErrNoSearchOrigin when nothing
// qualifies.
func (o *Order) OriginWaypoint() (Waypoint, error) {
	if err := o.Validate(); err != nil {
		return Waypoint{}, err
	}

	switch o.orderType {
	case TypeMultiStop:
		for _, w := range o.waypoints {
			if !w.IsFulfilled() && waypointUsable(w) {
				return w, nil
			}
		}
	default:
		if len(o.waypoints) > 0 && waypointUsable(o.waypoints[0]) {
			return o.waypoints[0], nil
		}
	}

	return Waypoint{}, ErrNoSearchOrigin
}

// StartSearch opens a search session: the phase becomes Searching with the
// first deadline at now+initialDuration, searching from origin. The origin is
// part of the session state, so the expanded phase widens around the same
// point. Valid for pending orders whose session has never started or has
// stopped (customer restart). Restarting clears any stale driver reference
// and the previous expansion timestamp.
func (o *Order) StartSearch(origin kernel.GeoPoint, now time.Time, initialDuration time.Duration) error {
	if err := o.status.ValidateAccept(); err != nil {
		return errs.NewInvalidStateError("start search", o.status.String())
	}

	newSearchStatus, err := o.searchStatus.Start()
	if err != nil {
		return err
	}

	expiresAt := now.Add(initialDuration)

	o.searchStatus = newSearchStatus
	o.searchStartedAt = &now
	o.searchExpiresAt = &expiresAt
	o.searchExpandedAt = nil
	o.searchPoint = &origin
	o.driverID = nil
	return nil
}

// ExpandSearch advances the session into the expanded phase with a fresh
// deadline at now+expandedDuration. Valid only for pending orders currently
// in the Searching phase, which makes duplicate scheduler fires no-ops at the
// aggregate level.
func (o *Order) ExpandSearch(now time.Time, expandedDuration time.Duration) error {
	if o.status != Pending || o.driverID != nil {
		return errs.NewInvalidStateError("expand search", o.status.String())
	}

	newSearchStatus, err := o.searchStatus.Expand()
	if err != nil {
		return err
	}

	expiresAt := now.Add(expandedDuration)

	o.searchStatus = newSearchStatus
	o.searchExpandedAt = &now
	o.searchExpiresAt = &expiresAt
	return nil
}

// StopSearch terminates the session without a claim. Valid only for pending
// orders in the expanded phase; the order itself stays pending so the
// customer can restart or cancel.
func (o *Order) StopSearch() error {
	if o.status != Pending || o.driverID != nil {
		return errs.NewInvalidStateError("stop search", o.status.String())
	}

	newSearchStatus, err := o.searchStatus.Stop()
	if err != nil {
		return err
	}

	o.searchStatus = newSearchStatus
	return nil
}

// Assign binds a driver and moves the order to Accepted. This expresses the
// claim at the aggregate level; the race-safe write path is the conditional
// update in the order repository, which enforces the same precondition
// atomically.
func (o *Order) Assign(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	return nil
}

// Cancel moves a pending order to Cancelled. Any armed search deadline
// becomes irrelevant: scheduled handlers re-check the status and no-op.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// SearchDue reports whether the session has an active phase whose deadline
// has passed at the given instant. The deadline is inclusive: a sweep at
// exactly searchExpiresAt fires the transition.
func (o *Order) SearchDue(now time.Time) bool {
	return o.status == Pending &&
		o.searchStatus.IsActive() &&
		o.searchExpiresAt != nil &&
		!now.Before(*o.searchExpiresAt)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return err
	}
	id := *driverID
	o.driverID = &id
	return nil
}

func (o *Order) setType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *Order) setWaypoints(waypoints []Waypoint) error {
	if len(waypoints) == 0 {
		return errs.NewValueIsRequiredError("waypoints")
	}
	for _, w := range waypoints {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	o.waypoints = make([]Waypoint, len(waypoints))
	copy(o.waypoints, waypoints)
	return nil
}

func waypointUsable(w Waypoint) bool {
	return w.Address() != "" || w.Point() != nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyPoint(p *kernel.GeoPoint) *kernel.GeoPoint {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

package driver

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver represents a delivery driver in the system.
// It is an aggregate root that manages driver identity, eligibility flags, and
// the last reported GPS fix. Drivers are dispatch candidates when they are
// active, approved, and carry a fresh location.
//
// Business rules:
//   - Driver must have a valid UUID and a non-empty name
//   - A location fix always carries the timestamp it was reported at
//   - Eligibility for dispatch requires an active, approved driver with a fix
//     no older than the configured staleness bound
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// isActive reports whether the driver is currently on shift
	isActive bool
	// isApproved reports whether the driver passed onboarding review
	isApproved bool
	// location is the last reported GPS fix (nil when never reported)
	location *kernel.GeoPoint
	// locationUpdatedAt is when the fix was reported (nil when never reported)
	locationUpdatedAt *time.Time
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver with no location fix. The driver starts
// inactive and unapproved; onboarding flips the flags through the repository.
func NewDriver(id kernel.UUID, name string) (*Driver, error) {
	return RestoreDriver(id, name, false, false, nil, nil)
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage.
// A location and its timestamp come and go together; supplying one without
// the other is a validation error.
func RestoreDriver(
	id kernel.UUID,
	name string,
	isActive, isApproved bool,
	location *kernel.GeoPoint,
	locationUpdatedAt *time.Time,
) (*Driver, error) {
	driver := &Driver{
		isActive:   isActive,
		isApproved: isApproved,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setName(name),
		driver.setLocation(location, locationUpdatedAt),
	); err != nil {
		return nil, err
	}

	return driver, nil
}

// IsEqual compares two drivers for equality based on their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// Validate checks if the Driver was properly constructed using a constructor.
// The zero value of Driver is invalid and will fail this validation.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the unique identifier of the driver.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the human-readable name of the driver.
func (d *Driver) Name() string {
	return d.name
}

// IsActive reports whether the driver is currently on shift.
func (d *Driver) IsActive() bool {
	return d.isActive
}

// IsApproved reports whether the driver passed onboarding review.
func (d *Driver) IsApproved() bool {
	return d.isApproved
}

// Location returns the last reported GPS fix, or nil if none was ever reported.
func (d *Driver) Location() *kernel.GeoPoint {
	if d.location == nil {
		return nil
	}
	location := *d.location
	return &location
}

// LocationUpdatedAt returns when the last fix was reported, or nil.
func (d *Driver) LocationUpdatedAt() *time.Time {
	if d.locationUpdatedAt == nil {
		return nil
	}
	at := *d.locationUpdatedAt
	return &at
}

// SetActive flips the on-shift flag.
func (d *Driver) SetActive(active bool) {
	d.isActive = active
}

// UpdateLocation records a fresh GPS fix reported at the given instant.
func (d *Driver) UpdateLocation(point kernel.GeoPoint, reportedAt time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}

	return d.setLocation(&point, &reportedAt)
}

// IsDispatchable reports whether the driver qualifies as a search candidate at
// the given instant: on shift, approved, and carrying a fix no older than
// maxLocationAge.
func (d *Driver) IsDispatchable(now time.Time, maxLocationAge time.Duration) bool {
	if !d.isActive || !d.isApproved {
		return false
	}
	if d.location == nil || d.locationUpdatedAt == nil {
		return false
	}

	return now.Sub(*d.locationUpdatedAt) <= maxLocationAge
}

// setID sets the driver's unique identifier with validation.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	d.id = id
	return nil
}

// setName sets the driver's name with validation.
func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	d.name = name
	return nil
}

// setLocation sets the location fix and its timestamp together.
func (d *Driver) setLocation(location *kernel.GeoPoint, updatedAt *time.Time) error {
	if location == nil && updatedAt == nil {
		d.location = nil
		d.locationUpdatedAt = nil
		return nil
	}

	if location == nil || updatedAt == nil {
		return errs.NewValueIsRequiredError("location and its timestamp must be set together")
	}

	if err := location.Validate(); err != nil {
		return err
	}

	point := *location
	at := *updatedAt
	d.location = &point
	d.locationUpdatedAt = &at
	return nil
}

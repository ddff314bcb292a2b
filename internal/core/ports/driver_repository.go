// Package ports defines repository and collaborator interfaces for the
// dispatch domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates,
// including the radius query feeding candidate selection.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// QueryNear retrieves active, approved drivers whose last fix is no older
	// than maxLocationAge and lies within a bounding box covering the circle
	// of radiusKm around origin. The box over-fetches at the corners; callers
	// must re-filter by exact distance (services.GeoIndex does this).
	QueryNear(
		ctx context.Context,
		origin kernel.GeoPoint,
		radiusKm float64,
		now time.Time,
		maxLocationAge time.Duration,
	) ([]*driver.Driver, error)
}

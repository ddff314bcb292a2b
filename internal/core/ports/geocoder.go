package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// Geocoder resolves a street address into coordinates. Implementations wrap
// an external service and must honor context cancellation; failures surface
// as errs.UpstreamUnavailableError.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (kernel.GeoPoint, error)
}

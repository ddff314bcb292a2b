package services

import (
	"sort"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// DriverCandidate is a driver selected for notification in a search phase,
// together with its great-circle distance from the search origin.
type DriverCandidate struct {
	DriverID   kernel.UUID
	Point      kernel.GeoPoint
	DistanceKm float64
}

// GeoIndex is a domain service that turns a coarse store query result into the
// exact candidate set for a search phase.
//
// The store-level radius query is a bounding-box prefilter and may over-fetch:
// corners of the box lie outside the circle. SelectCandidates re-computes the
// haversine distance for every row and keeps only drivers strictly within the
// radius, sorted nearest first, so fanout never notifies a driver outside the
// advertised circle.
type GeoIndex struct{}

// NewGeoIndex creates a new GeoIndex instance.
func NewGeoIndex() GeoIndex {
	return GeoIndex{}
}

// SelectCandidates filters drivers down to dispatchable ones within radiusKm
// of origin and returns them ordered by ascending distance. Drivers without a
// usable fix at the given instant are skipped, not errored: eligibility is a
// per-driver property and one bad row must not sink the phase.
func (g GeoIndex) SelectCandidates(
	origin kernel.GeoPoint,
	drivers []*driver.Driver,
	radiusKm float64,
	now time.Time,
	maxLocationAge time.Duration,
) ([]DriverCandidate, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, errs.NewValueIsInvalidError("radius")
	}

	candidates := make([]DriverCandidate, 0, len(drivers))
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if !d.IsDispatchable(now, maxLocationAge) {
			continue
		}

		point := d.Location()
		distance, err := origin.DistanceKm(*point)
		if err != nil {
			return nil, err
		}
		if distance > radiusKm {
			continue
		}

		candidates = append(candidates, DriverCandidate{
			DriverID:   d.ID(),
			Point:      *point,
			DistanceKm: distance,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})

	return candidates, nil
}

package commands

import (
	"time"

	"dispatch/internal/pkg/errs"
)

// DispatchSettings carries the tunable parameters of the two-phase driver
// search. Values come from configuration at composition time and stay fixed
// for the process lifetime.
type DispatchSettings struct {
	// InitialRadiusKm is the radius of the first search phase.
	InitialRadiusKm float64

	// ExpandedRadiusKm is the radius of the expanded search phase.
	ExpandedRadiusKm float64

	// InitialDuration is how long the first phase runs before expanding.
	InitialDuration time.Duration

	// ExpandedDuration is how long the expanded phase runs before stopping.
	ExpandedDuration time.Duration

	// MaxLocationAge bounds how old a driver's last fix may be for the driver
	// to count as a candidate.
	MaxLocationAge time.Duration
}

// Validate checks that every setting is positive.
func (s DispatchSettings) Validate() error {
	if s.InitialRadiusKm <= 0 {
		return errs.NewValueIsInvalidError("initial radius")
	}
	if s.ExpandedRadiusKm <= 0 {
		return errs.NewValueIsInvalidError("expanded radius")
	}
	if s.InitialDuration <= 0 {
		return errs.NewValueIsInvalidError("initial duration")
	}
	if s.ExpandedDuration <= 0 {
		return errs.NewValueIsInvalidError("expanded duration")
	}
	if s.MaxLocationAge <= 0 {
		return errs.NewValueIsInvalidError("max location age")
	}
	return nil
}

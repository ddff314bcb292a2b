package driverrepo

import (
	"context"
	"errors"
	"math"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.DriverRepository = &GormDriverRepository{}

// kmPerDegreeLat is the approximate surface distance of one degree of
// latitude. Longitude degrees shrink with the cosine of the latitude.
const kmPerDegreeLat = 111.195

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormDriverRepository implements the driver repository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormDriverRepository creates a repository bound to the given DB handle,
// which may be a transaction.
func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{db: db, tracker: tracker}
}

// Add persists a new driver aggregate.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.trackAggregate(aggregate)
	return nil
}

// Update saves the full driver state. A full save is required so that a
// deactivation or a cleared flag round-trips.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", aggregate.ID())
	}

	r.trackAggregate(aggregate)
	return nil
}

// Get retrieves a driver aggregate by ID.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	dto := DriverDTO{}
	result := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id)
		}
		return nil, result.Error
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.trackAggregate(aggregate)
	return aggregate, nil
}

// QueryNear returns active, approved drivers with a fresh location fix inside
// a bounding box covering the radius circle. The box over-fetches at the
// corners; callers re-filter by exact haversine distance.
func (r *GormDriverRepository) QueryNear(
	ctx context.Context,
	origin kernel.GeoPoint,
	radiusKm float64,
	now time.Time,
	maxLocationAge time.Duration,
) ([]*driver.Driver, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("radiusKm", radiusKm, 0, math.MaxFloat64)
	}

	latDelta := radiusKm / kmPerDegreeLat

	// Near the poles the longitude band degenerates; fall back to a full
	// longitude scan rather than divide by a vanishing cosine.
	lonDelta := 180.0
	if cosLat := math.Cos(origin.Latitude() * math.Pi / 180.0); cosLat > 1e-6 {
		lonDelta = radiusKm / (kmPerDegreeLat * cosLat)
		if lonDelta > 180.0 {
			lonDelta = 180.0
		}
	}

	oldestFix := now.Add(-maxLocationAge)

	query := r.db.WithContext(ctx).
		Where("is_active AND is_approved").
		Where("location_updated_at >= ?", oldestFix).
		Where("latitude BETWEEN ? AND ?", origin.Latitude()-latDelta, origin.Latitude()+latDelta)

	// A band crossing the antimeridian splits into two ranges; the wrapped
	// edge re-enters from the opposite sign.
	lonMin := origin.Longitude() - lonDelta
	lonMax := origin.Longitude() + lonDelta
	switch {
	case lonDelta >= 180.0:
	case lonMin < -180.0:
		query = query.Where("(longitude >= ? OR longitude <= ?)", lonMin+360.0, lonMax)
	case lonMax > 180.0:
		query = query.Where("(longitude >= ? OR longitude <= ?)", lonMin, lonMax-360.0)
	default:
		query = query.Where("longitude BETWEEN ? AND ?", lonMin, lonMax)
	}

	var dtos []DriverDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		drivers = append(drivers, aggregate)
	}

	return drivers, nil
}

func (r *GormDriverRepository) trackAggregate(aggregate *driver.Driver) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

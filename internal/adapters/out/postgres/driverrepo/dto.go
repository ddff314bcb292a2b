// Package driverrepo implements driver persistence, including the bounding
// box prefilter behind candidate selection.
package driverrepo

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver
// aggregates. Location columns are nullable: a driver exists before its
// first location fix.
type DriverDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(255);not null"`
	IsActive          bool      `gorm:"not null;index"`
	IsApproved        bool      `gorm:"not null"`
	Latitude          *float64  `gorm:"index"`
	Longitude         *float64  `gorm:"index"`
	LocationUpdatedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	var latitude, longitude *float64
	if location := aggregate.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		latitude = &lat
		longitude = &lon
	}

	return DriverDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		IsActive:          aggregate.IsActive(),
		IsApproved:        aggregate.IsApproved(),
		Latitude:          latitude,
		Longitude:         longitude,
		LocationUpdatedAt: aggregate.LocationUpdatedAt(),
	}
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return driver.RestoreDriver(id, dto.Name, dto.IsActive, dto.IsApproved,
		location, dto.LocationUpdatedAt)
}

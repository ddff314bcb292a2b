// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The search session lives on the order row itself: search_expires_at is the
// durable scheduler deadline the sweep job polls for.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID         *uuid.UUID `gorm:"type:uuid;index"`
	OrderType        string     `gorm:"type:varchar(32);not null"`
	Status           string     `gorm:"type:varchar(32);not null;index"`
	SearchStatus     *string    `gorm:"type:varchar(32)"`
	SearchStartedAt  *time.Time
	SearchExpiresAt  *time.Time `gorm:"index"`
	SearchExpandedAt *time.Time
	SearchLat        *float64
	SearchLon        *float64
	Waypoints        []WaypointDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// WaypointDTO represents one route stop of an order. Coordinates are nullable:
// a waypoint may carry only an address until the geocoder resolves it.
type WaypointDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey"`
	Address   string    `gorm:"type:varchar(512);not null"`
	Latitude  *float64
	Longitude *float64
	Fulfilled bool `gorm:"not null"`
}

// TableName specifies the database table name for waypoint entities.
func (WaypointDTO) TableName() string {
	return "order_waypoints"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var searchStatus *string
	if aggregate.SearchStatus() != order.SearchNotStarted {
		s := aggregate.SearchStatus().String()
		searchStatus = &s
	}

	var searchLat, searchLon *float64
	if point := aggregate.SearchPoint(); point != nil {
		lat := point.Latitude()
		lon := point.Longitude()
		searchLat = &lat
		searchLon = &lon
	}

	waypoints := make([]WaypointDTO, 0, len(aggregate.Waypoints()))
	for seq, waypoint := range aggregate.Waypoints() {
		var latitude, longitude *float64
		if point := waypoint.Point(); point != nil {
			lat := point.Latitude()
			lon := point.Longitude()
			latitude = &lat
			longitude = &lon
		}

		waypoints = append(waypoints, WaypointDTO{
			OrderID:   orderID,
			Seq:       seq,
			Address:   waypoint.Address(),
			Latitude:  latitude,
			Longitude: longitude,
			Fulfilled: waypoint.IsFulfilled(),
		})
	}

	return OrderDTO{
		ID:               orderID,
		CustomerID:       aggregate.CustomerID().Bytes(),
		DriverID:         driverID,
		OrderType:        aggregate.Type().String(),
		Status:           aggregate.Status().String(),
		SearchStatus:     searchStatus,
		SearchStartedAt:  aggregate.SearchStartedAt(),
		SearchExpiresAt:  aggregate.SearchExpiresAt(),
		SearchExpandedAt: aggregate.SearchExpandedAt(),
		SearchLat:        searchLat,
		SearchLon:        searchLon,
		Waypoints:        waypoints,
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, re-validating all invariants on the way out of storage.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	orderType, err := order.TypeFromString(dto.OrderType)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	searchStatus := order.SearchNotStarted
	if dto.SearchStatus != nil {
		searchStatus, err = order.SearchStatusFromString(*dto.SearchStatus)
		if err != nil {
			return nil, err
		}
	}

	var searchPoint *kernel.GeoPoint
	if dto.SearchLat != nil && dto.SearchLon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.SearchLat, *dto.SearchLon)
		if pointErr != nil {
			return nil, pointErr
		}
		searchPoint = &point
	}

	waypoints := make([]order.Waypoint, 0, len(dto.Waypoints))
	for _, waypointDTO := range dto.Waypoints {
		waypoint, waypointErr := waypointToDomain(waypointDTO)
		if waypointErr != nil {
			return nil, waypointErr
		}
		waypoints = append(waypoints, waypoint)
	}

	return order.RestoreOrder(id, customerID, driverID, orderType, status, searchStatus,
		dto.SearchStartedAt, dto.SearchExpiresAt, dto.SearchExpandedAt, searchPoint, waypoints)
}

func waypointToDomain(dto WaypointDTO) (order.Waypoint, error) {
	var point *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return order.Waypoint{}, err
		}
		point = &p
	}

	return order.RestoreWaypoint(dto.Address, point, dto.Fulfilled)
}

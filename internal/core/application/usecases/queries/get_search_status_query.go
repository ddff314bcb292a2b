// Package queries contains read-only operations for the dispatch system.
// Implements the Query side of the CQRS architecture: handlers read projection
// data straight from the database, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetSearchStatusQueryIsNotConstructed = errors.New(
	"GetSearchStatusQuery must be created via NewGetSearchStatusQuery constructor",
)

// GetSearchStatusQuery retrieves the state of an order's driver search. The
// client polls it to drive the countdown and the "no driver found" screen.
type GetSearchStatusQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSearchStatusQuery creates a query for the given order's search state.
func NewGetSearchStatusQuery(orderID kernel.UUID) (GetSearchStatusQuery, error) {
	query := GetSearchStatusQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetSearchStatusQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSearchStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetSearchStatusQueryIsNotConstructed)
}

// OrderID returns the order whose search state is requested.
func (q GetSearchStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetSearchStatusQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetSearchStatusQueryResponse is the search state of one order.
// SearchStatus is empty while no session was ever started; the timestamps are
// nil in the same case. DriverID is set once a driver claimed the order.
type GetSearchStatusQueryResponse struct {
	OrderID         kernel.UUID
	Status          string
	SearchStatus    string
	SearchStartedAt *time.Time
	SearchExpiresAt *time.Time
	DriverID        *kernel.UUID
}

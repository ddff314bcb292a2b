package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSearchStatusQueryHandler reads an order's search state straight from the
// orders table.
type GetSearchStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetSearchStatusQueryHandler creates a handler for search status reads.
// Requires a GORM database connection for query execution.
func NewGetSearchStatusQueryHandler(db *gorm.DB) GetSearchStatusQueryHandler {
	return GetSearchStatusQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound for an unknown
// order.
func (h GetSearchStatusQueryHandler) Handle(
	ctx context.Context,
	query GetSearchStatusQuery,
) (GetSearchStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSearchStatusQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			search_status,
			search_started_at,
			search_expires_at,
			driver_id
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var (
		id              uuid.UUID
		status          string
		searchStatus    sql.NullString
		searchStartedAt sql.NullTime
		searchExpiresAt sql.NullTime
		driverID        uuid.NullUUID
	)

	err := row.Scan(&id, &status, &searchStatus, &searchStartedAt, &searchExpiresAt, &driverID)
	if errors.Is(err, sql.ErrNoRows) {
		return GetSearchStatusQueryResponse{},
			errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetSearchStatusQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetSearchStatusQueryResponse{}, err
	}

	response := GetSearchStatusQueryResponse{
		OrderID: orderID,
		Status:  status,
	}
	if searchStatus.Valid {
		response.SearchStatus = searchStatus.String
	}
	if searchStartedAt.Valid {
		at := searchStartedAt.Time
		response.SearchStartedAt = &at
	}
	if searchExpiresAt.Valid {
		at := searchExpiresAt.Time
		response.SearchExpiresAt = &at
	}
	if driverID.Valid {
		driver, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return GetSearchStatusQueryResponse{}, idErr
		}
		response.DriverID = &driver
	}

	return response, nil
}

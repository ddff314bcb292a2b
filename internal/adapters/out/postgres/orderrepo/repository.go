package orderrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.OrderRepository = &GormOrderRepository{}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormOrderRepository implements the order repository using GORM.
//
// Every write after Add decides a race (TryAssign, OpenSearch,
// AdvanceSearchToExpanded, MarkSearchStopped, MarkCancelled) and runs as a
// single conditional UPDATE statement: the WHERE clause carries the
// precondition, and the affected row count is the verdict. There is no
// full-row save that could overwrite a claim committed after the caller's
// read.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormOrderRepository creates a repository bound to the given DB handle,
// which may be a transaction.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{db: db, tracker: tracker}
}

// Add persists a new order aggregate together with its waypoints.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Get loads an order aggregate with its waypoints in route sequence.
func (r *GormOrderRepository) Get(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	dto, err := r.getDTO(ctx, orderID)
	if err != nil {
		return nil, err
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.trackAggregate(aggregate)
	return aggregate, nil
}

// TryAssign atomically claims a pending, unassigned order for the driver.
// Exactly one of N concurrent claims matches the row; the rest resolve their
// outcome from a follow-up read.
func (r *GormOrderRepository) TryAssign(ctx context.Context, orderID kernel.UUID, driverID kernel.UUID) (ports.AssignOutcome, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE orders
		    SET driver_id = ?, status = ?, updated_at = now()
		  WHERE id = ? AND status = ? AND driver_id IS NULL`,
		driverID.Bytes(), order.Accepted.String(),
		orderID.Bytes(), order.Pending.String())
	if result.Error != nil {
		return ports.AssignOutcomeUnknown, result.Error
	}
	if result.RowsAffected == 1 {
		return ports.AssignOutcomeAssigned, nil
	}

	dto, err := r.getDTO(ctx, orderID)
	if err != nil {
		return ports.AssignOutcomeUnknown, err
	}

	// A retried claim that already won earlier reports success again.
	if dto.DriverID != nil && *dto.DriverID == driverID.Bytes() {
		return ports.AssignOutcomeAssigned, nil
	}
	if dto.DriverID != nil {
		return ports.AssignOutcomeAlreadyAssigned, nil
	}

	return ports.AssignOutcomeNotAvailable, nil
}

// OpenSearch opens or reopens the search session in one guarded UPDATE. The
// status/driver precondition means a claim that committed after the caller's
// read makes this a no-op instead of erasing the claim.
func (r *GormOrderRepository) OpenSearch(ctx context.Context, orderID kernel.UUID, origin kernel.GeoPoint, startedAt, expiresAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE orders
		    SET search_status = ?, search_started_at = ?, search_expires_at = ?,
		        search_expanded_at = NULL, search_lat = ?, search_lon = ?, updated_at = now()
		  WHERE id = ? AND status = ? AND driver_id IS NULL
		    AND (search_status IS NULL OR search_status = ?)`,
		order.Searching.String(), startedAt, expiresAt,
		origin.Latitude(), origin.Longitude(),
		orderID.Bytes(), order.Pending.String(), order.SearchStopped.String())
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// MarkCancelled cancels a pending, unassigned order. A row already claimed by
// a driver does not match and stays accepted.
func (r *GormOrderRepository) MarkCancelled(ctx context.Context, orderID kernel.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE orders
		    SET status = ?, updated_at = now()
		  WHERE id = ? AND status = ? AND driver_id IS NULL`,
		order.Cancelled.String(),
		orderID.Bytes(), order.Pending.String())
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// GetDueSearches loads orders whose active search deadline has elapsed,
// oldest deadline first.
func (r *GormOrderRepository) GetDueSearches(ctx context.Context, now time.Time, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Waypoints", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Where("status = ? AND driver_id IS NULL", order.Pending.String()).
		Where("search_status IN ?", []string{order.Searching.String(), order.SearchExpanded.String()}).
		Where("search_expires_at <= ?", now).
		Order("search_expires_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}

// AdvanceSearchToExpanded moves a due searching session to the expanded
// phase with a fresh deadline. Returns false when the row no longer matches,
// meaning the session was claimed, cancelled, or already expanded.
func (r *GormOrderRepository) AdvanceSearchToExpanded(ctx context.Context, orderID kernel.UUID, now time.Time, expiresAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE orders
		    SET search_status = ?, search_expanded_at = ?, search_expires_at = ?, updated_at = now()
		  WHERE id = ? AND status = ? AND driver_id IS NULL
		    AND search_status = ? AND search_expires_at <= ?`,
		order.SearchExpanded.String(), now, expiresAt,
		orderID.Bytes(), order.Pending.String(),
		order.Searching.String(), now)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// MarkSearchStopped terminates a due expanded session. Same no-match
// semantics as AdvanceSearchToExpanded.
func (r *GormOrderRepository) MarkSearchStopped(ctx context.Context, orderID kernel.UUID, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE orders
		    SET search_status = ?, updated_at = now()
		  WHERE id = ? AND status = ? AND driver_id IS NULL
		    AND search_status = ? AND search_expires_at <= ?`,
		order.SearchStopped.String(),
		orderID.Bytes(), order.Pending.String(),
		order.SearchExpanded.String(), now)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// LockSearch takes a transaction-scoped advisory lock on the order's search
// session. The lock releases on commit or rollback.
func (r *GormOrderRepository) LockSearch(ctx context.Context, orderID kernel.UUID) error {
	return r.db.WithContext(ctx).Exec(
		`SELECT pg_advisory_xact_lock(hashtextextended(?::text, 0))`,
		orderID.String()).Error
}

func (r *GormOrderRepository) getDTO(ctx context.Context, orderID kernel.UUID) (OrderDTO, error) {
	dto := OrderDTO{}
	result := r.db.WithContext(ctx).
		Preload("Waypoints", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		First(&dto, "id = ?", orderID.Bytes())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return OrderDTO{}, errs.NewObjectNotFoundError("order", orderID)
		}
		return OrderDTO{}, result.Error
	}

	return dto, nil
}

func (r *GormOrderRepository) trackAggregate(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

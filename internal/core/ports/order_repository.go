package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// AssignOutcome is the result of an atomic claim attempt on an order.
type AssignOutcome int

const (
	// AssignOutcomeUnknown represents an undefined outcome.
	AssignOutcomeUnknown AssignOutcome = iota

	// AssignOutcomeAssigned means the caller won the claim: the order row was
	// moved to accepted with the caller's driver bound, in one atomic write.
	AssignOutcomeAssigned

	// AssignOutcomeAlreadyAssigned means another driver won the race first.
	AssignOutcomeAlreadyAssigned

	// AssignOutcomeNotAvailable means the order is not claimable at all
	// (cancelled, completed, or unknown).
	AssignOutcomeNotAvailable
)

// OrderRepository defines the persistence contract for order aggregates and
// the conditional writes the dispatch engine relies on for correctness.
//
// Every engine write is a conditional operation (TryAssign, OpenSearch,
// AdvanceSearchToExpanded, MarkSearchStopped, MarkCancelled) compiling to a
// single guarded UPDATE whose WHERE clause re-checks the precondition, so
// concurrent callers cannot both succeed, duplicate scheduler fires collapse
// to no-ops, and a committed claim is never overwritten by a stale read.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// TryAssign atomically claims a pending, unassigned order for the given
	// driver. Exactly one concurrent caller observes AssignOutcomeAssigned;
	// the rest observe AssignOutcomeAlreadyAssigned or AssignOutcomeNotAvailable
	// depending on the order's state at read time.
	TryAssign(ctx context.Context, orderID, driverID kernel.UUID) (AssignOutcome, error)

	// OpenSearch opens (or reopens) the order's search session: phase becomes
	// searching with the given origin point and deadlines, clearing any
	// previous expansion timestamp. Returns false without error when the
	// guarded update matched no row: the order was claimed, cancelled, or has
	// an active session.
	OpenSearch(ctx context.Context, orderID kernel.UUID, origin kernel.GeoPoint, startedAt, expiresAt time.Time) (bool, error)

	// MarkCancelled moves a pending, unassigned order to cancelled. Returns
	// false without error when the order was claimed or already terminal,
	// leaving the row untouched.
	MarkCancelled(ctx context.Context, orderID kernel.UUID) (bool, error)

	// GetDueSearches retrieves pending, unassigned orders whose active search
	// phase has a deadline at or before the given instant.
	GetDueSearches(ctx context.Context, now time.Time, limit int) ([]*order.Order, error)

	// AdvanceSearchToExpanded moves a due searching-phase order into the
	// expanded phase with a new deadline. Returns false without error when the
	// guarded update matched no row: the order was claimed, cancelled, already
	// expanded, or its deadline has not passed.
	AdvanceSearchToExpanded(ctx context.Context, orderID kernel.UUID, now time.Time, expiresAt time.Time) (bool, error)

	// MarkSearchStopped moves a due expanded-phase order into the stopped
	// phase. Same no-match semantics as AdvanceSearchToExpanded.
	MarkSearchStopped(ctx context.Context, orderID kernel.UUID, now time.Time) (bool, error)

	// LockSearch takes a transaction-scoped advisory lock on the order's
	// search session. Writers that restart or sweep the same session serialize
	// on it; the lock releases with the transaction.
	LockSearch(ctx context.Context, orderID kernel.UUID) error
}

package commands_test

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) TryAssign(ctx context.Context, orderID, driverID kernel.UUID) (ports.AssignOutcome, error) {
	args := m.Called(ctx, orderID, driverID)
	return args.Get(0).(ports.AssignOutcome), args.Error(1)
}

func (m *MockOrderRepository) OpenSearch(
	ctx context.Context, orderID kernel.UUID, origin kernel.GeoPoint, startedAt, expiresAt time.Time,
) (bool, error) {
	args := m.Called(ctx, orderID, origin, startedAt, expiresAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) MarkCancelled(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) GetDueSearches(ctx context.Context, now time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AdvanceSearchToExpanded(
	ctx context.Context, orderID kernel.UUID, now, expiresAt time.Time,
) (bool, error) {
	args := m.Called(ctx, orderID, now, expiresAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) MarkSearchStopped(ctx context.Context, orderID kernel.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, orderID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) LockSearch(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) QueryNear(
	ctx context.Context,
	origin kernel.GeoPoint,
	radiusKm float64,
	now time.Time,
	maxLocationAge time.Duration,
) ([]*driver.Driver, error) {
	args := m.Called(ctx, origin, radiusKm, now, maxLocationAge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockNotificationRecordRepository struct{ mock.Mock }

func (m *MockNotificationRecordRepository) CreateIfAbsent(
	ctx context.Context, orderID, driverID kernel.UUID, phase order.SearchStatus,
) (bool, error) {
	args := m.Called(ctx, orderID, driverID, phase)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRecordRepository) CreateIfNeverNotified(
	ctx context.Context, orderID, driverID kernel.UUID, phase order.SearchStatus,
) (bool, error) {
	args := m.Called(ctx, orderID, driverID, phase)
	return args.Bool(0), args.Error(1)
}

type MockNotificationSender struct{ mock.Mock }

func (m *MockNotificationSender) SendInApp(
	ctx context.Context, userID kernel.UUID, title, message, notificationType string, orderID *kernel.UUID,
) error {
	args := m.Called(ctx, userID, title, message, notificationType, orderID)
	return args.Error(0)
}

func (m *MockNotificationSender) SendPush(ctx context.Context, userID kernel.UUID, title, message string) error {
	args := m.Called(ctx, userID, title, message)
	return args.Error(0)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) NotificationRecordRepository() ports.NotificationRecordRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRecordRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testSettings() commands.DispatchSettings {
	return commands.DispatchSettings{
		InitialRadiusKm:  10,
		ExpandedRadiusKm: 10,
		InitialDuration:  60 * time.Second,
		ExpandedDuration: 30 * time.Second,
		MaxLocationAge:   15 * time.Minute,
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func mustGeoPoint(lat, lon float64) kernel.GeoPoint {
	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		panic(err)
	}
	return point
}

// newPendingOrder builds a pending package order with a resolved pickup point.
func newPendingOrder() *order.Order {
	point := mustGeoPoint(24.7136, 46.6753)
	pickup, err := order.NewWaypoint("Pickup: 1 Main St", &point)
	if err != nil {
		panic(err)
	}
	dropoff, err := order.NewWaypoint("Dropoff: 2 Side St", nil)
	if err != nil {
		panic(err)
	}

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		order.TypePackage, []order.Waypoint{pickup, dropoff})
	if err != nil {
		panic(err)
	}
	return aggregate
}

// newSearchingOrder builds an order whose first phase started at startedAt,
// searching from the default pickup point.
func newSearchingOrder(startedAt time.Time, initialDuration time.Duration) *order.Order {
	aggregate := newPendingOrder()
	if err := aggregate.StartSearch(mustGeoPoint(24.7136, 46.6753), startedAt, initialDuration); err != nil {
		panic(err)
	}
	return aggregate
}

// newExpandedOrder builds an order in the expanded phase.
func newExpandedOrder(startedAt time.Time, settings commands.DispatchSettings) *order.Order {
	aggregate := newSearchingOrder(startedAt, settings.InitialDuration)
	if err := aggregate.ExpandSearch(startedAt.Add(settings.InitialDuration), settings.ExpandedDuration); err != nil {
		panic(err)
	}
	return aggregate
}

// nearbyDriver builds a dispatchable driver close to the default pickup.
func nearbyDriver(now time.Time) *driver.Driver {
	point := mustGeoPoint(24.7200, 46.6800)
	reportedAt := now.Add(-time.Minute)
	aggregate, err := driver.RestoreDriver(kernel.NewUUID(), "Driver", true, true, &point, &reportedAt)
	if err != nil {
		panic(err)
	}
	return aggregate
}

var testClockStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

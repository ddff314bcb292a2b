package notificationrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/notificationrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NotificationRecordRepositoryIntegrationTestSuite verifies notification
// dedup semantics against a real PostgreSQL instance.
type NotificationRecordRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *notificationrepo.GormNotificationRecordRepository
}

func (suite *NotificationRecordRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&notificationrepo.DriverNotificationDTO{}))
}

func (suite *NotificationRecordRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE driver_notifications").Error)
	suite.repository = notificationrepo.NewGormNotificationRecordRepository(suite.db)
}

func (suite *NotificationRecordRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *NotificationRecordRepositoryIntegrationTestSuite) TestCreateIfAbsent_FirstInsert_ReportsCreated() {
	ctx := context.Background()
	orderID, driverID := kernel.NewUUID(), kernel.NewUUID()

	created, err := suite.repository.CreateIfAbsent(ctx, orderID, driverID, order.Searching)
	suite.Require().NoError(err)
	suite.True(created)

	created, err = suite.repository.CreateIfAbsent(ctx, orderID, driverID, order.Searching)
	suite.Require().NoError(err)
	suite.False(created)
}

func (suite *NotificationRecordRepositoryIntegrationTestSuite) TestCreateIfAbsent_DistinctPhases_BothCreated() {
	ctx := context.Background()
	orderID, driverID := kernel.NewUUID(), kernel.NewUUID()

	created, err := suite.repository.CreateIfAbsent(ctx, orderID, driverID, order.Searching)
	suite.Require().NoError(err)
	suite.True(created)

	created, err = suite.repository.CreateIfAbsent(ctx, orderID, driverID, order.SearchExpanded)
	suite.Require().NoError(err)
	suite.True(created)
}

func (suite *NotificationRecordRepositoryIntegrationTestSuite) TestCreateIfAbsent_ConcurrentInserts_ExactlyOneCreated() {
	ctx := context.Background()
	orderID, driverID := kernel.NewUUID(), kernel.NewUUID()

	const attempts = 8
	results := make([]bool, attempts)
	insertErrs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], insertErrs[i] = suite.repository.CreateIfAbsent(ctx, orderID, driverID, order.Searching)
		}(i)
	}
	wg.Wait()

	created := 0
	for i := range attempts {
		suite.Require().NoError(insertErrs[i])
		if results[i] {
			created++
		}
	}
	suite.Equal(1, created)
}

func (suite *NotificationRecordRepositoryIntegrationTestSuite) TestCreateIfNeverNotified_EarlierPhaseRecord_NotCreated() {
	ctx := context.Background()
	orderID, driverID := kernel.NewUUID(), kernel.NewUUID()

	created, err := suite.repository.CreateIfAbsent(ctx, orderID, driverID, order.Searching)
	suite.Require().NoError(err)
	suite.True(created)

	created, err = suite.repository.CreateIfNeverNotified(ctx, orderID, driverID, order.SearchExpanded)
	suite.Require().NoError(err)
	suite.False(created)
}

func (suite *NotificationRecordRepositoryIntegrationTestSuite) TestCreateIfNeverNotified_FreshDriver_Created() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	created, err := suite.repository.CreateIfAbsent(ctx, orderID, kernel.NewUUID(), order.Searching)
	suite.Require().NoError(err)
	suite.True(created)

	newcomer := kernel.NewUUID()
	created, err = suite.repository.CreateIfNeverNotified(ctx, orderID, newcomer, order.SearchExpanded)
	suite.Require().NoError(err)
	suite.True(created)

	created, err = suite.repository.CreateIfNeverNotified(ctx, orderID, newcomer, order.SearchExpanded)
	suite.Require().NoError(err)
	suite.False(created)
}

func (suite *NotificationRecordRepositoryIntegrationTestSuite) TestCreateIfNeverNotified_OtherOrderRecord_Created() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	created, err := suite.repository.CreateIfAbsent(ctx, kernel.NewUUID(), driverID, order.Searching)
	suite.Require().NoError(err)
	suite.True(created)

	created, err = suite.repository.CreateIfNeverNotified(ctx, kernel.NewUUID(), driverID, order.SearchExpanded)
	suite.Require().NoError(err)
	suite.True(created)
}

func (suite *NotificationRecordRepositoryIntegrationTestSuite) TestCreateIfNeverNotified_InactivePhase_ReturnsError() {
	_, err := suite.repository.CreateIfNeverNotified(context.Background(),
		kernel.NewUUID(), kernel.NewUUID(), order.SearchNotStarted)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *NotificationRecordRepositoryIntegrationTestSuite) TestCreateIfAbsent_InactivePhase_ReturnsError() {
	_, err := suite.repository.CreateIfAbsent(context.Background(),
		kernel.NewUUID(), kernel.NewUUID(), order.SearchNotStarted)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}

func TestNotificationRecordRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationRecordRepositoryIntegrationTestSuite))
}

package notify_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SenderIntegrationTestSuite verifies in-app inbox writes against a real
// PostgreSQL instance and push relay behavior against a stub gateway.
type SenderIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *SenderIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&notify.NotificationDTO{}))
}

func (suite *SenderIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE notifications").Error)
}

func (suite *SenderIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SenderIntegrationTestSuite) newSender(pushURL string) *notify.Sender {
	sender, err := notify.NewSender(suite.db, pushURL, slog.New(slog.DiscardHandler))
	suite.Require().NoError(err)
	return sender
}

func (suite *SenderIntegrationTestSuite) TestSendInApp_WritesInboxRow() {
	ctx := context.Background()
	sender := suite.newSender("")

	userID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	err := sender.SendInApp(ctx, userID, "New delivery request",
		"An order near you is looking for a driver", "dispatch", &orderID)
	suite.Require().NoError(err)

	var rows []notify.NotificationDTO
	suite.Require().NoError(suite.db.Find(&rows).Error)
	suite.Require().Len(rows, 1)
	suite.Equal(userID.Bytes(), rows[0].UserID)
	suite.Equal("New delivery request", rows[0].Title)
	suite.Equal("dispatch", rows[0].Type)
	suite.Require().NotNil(rows[0].OrderID)
	suite.Equal(orderID.Bytes(), *rows[0].OrderID)
	suite.False(rows[0].IsRead)
}

func (suite *SenderIntegrationTestSuite) TestSendInApp_WithoutOrderReference() {
	ctx := context.Background()
	sender := suite.newSender("")

	err := sender.SendInApp(ctx, kernel.NewUUID(), "No driver found",
		"We could not find a driver for your order.", "search", nil)
	suite.Require().NoError(err)

	var rows []notify.NotificationDTO
	suite.Require().NoError(suite.db.Find(&rows).Error)
	suite.Require().Len(rows, 1)
	suite.Nil(rows[0].OrderID)
}

func (suite *SenderIntegrationTestSuite) TestSendInApp_RequiresTitleAndMessage() {
	ctx := context.Background()
	sender := suite.newSender("")

	err := sender.SendInApp(ctx, kernel.NewUUID(), "", "message", "dispatch", nil)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrValueIsRequired)

	err = sender.SendInApp(ctx, kernel.NewUUID(), "title", "", "dispatch", nil)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrValueIsRequired)

	suite.Equal(int64(0), suite.countNotifications())
}

func (suite *SenderIntegrationTestSuite) TestSendPush_RelaysThroughGateway() {
	var received atomic.Int32
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/send", r.URL.Path)
		suite.Equal("application/json", r.Header.Get("Content-Type"))
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	sender := suite.newSender(gateway.URL)

	err := sender.SendPush(context.Background(), kernel.NewUUID(), "New delivery request",
		"An order near you is looking for a driver")
	suite.Require().NoError(err)
	suite.Equal(int32(1), received.Load())
}

func (suite *SenderIntegrationTestSuite) TestSendPush_GatewayFailure_ReturnsUnavailable() {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer gateway.Close()

	sender := suite.newSender(gateway.URL)

	err := sender.SendPush(context.Background(), kernel.NewUUID(), "title", "message")
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrUpstreamUnavailable)
}

func (suite *SenderIntegrationTestSuite) TestSendPush_Disabled_IsNoOp() {
	sender := suite.newSender("")

	err := sender.SendPush(context.Background(), kernel.NewUUID(), "title", "message")
	suite.Require().NoError(err)
}

func (suite *SenderIntegrationTestSuite) countNotifications() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&notify.NotificationDTO{}).Count(&count).Error)
	return count
}

func TestSenderIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SenderIntegrationTestSuite))
}

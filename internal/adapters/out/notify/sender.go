// Package notify delivers notifications to users: in-app inbox rows written
// to storage, and best-effort push messages relayed through an HTTP gateway.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

const pushTimeout = 5 * time.Second

var _ ports.NotificationSender = &Sender{}

// Sender implements notification delivery. In-app rows are the durable
// channel; push is a hint on top and may be disabled by leaving the gateway
// URL empty.
type Sender struct {
	db         *gorm.DB
	httpClient *http.Client
	pushURL    string
	logger     *slog.Logger
}

// NewSender creates a notification sender. An empty pushURL disables push
// delivery; SendPush then succeeds without doing anything.
func NewSender(db *gorm.DB, pushURL string, logger *slog.Logger) (*Sender, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}

	return &Sender{
		db:         db,
		httpClient: &http.Client{Timeout: pushTimeout},
		pushURL:    pushURL,
		logger:     logger.With("component", "notify"),
	}, nil
}

// SendInApp writes an inbox row for the user.
func (s *Sender) SendInApp(
	ctx context.Context,
	userID kernel.UUID,
	title, message, notificationType string,
	orderID *kernel.UUID,
) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}

	dto := NotificationDTO{
		ID:      kernel.NewUUID().Bytes(),
		UserID:  userID.Bytes(),
		Title:   title,
		Message: message,
		Type:    notificationType,
	}
	if orderID != nil {
		raw := orderID.Bytes()
		dto.OrderID = &raw
	}

	return s.db.WithContext(ctx).Create(&dto).Error
}

type pushRequest struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// SendPush relays a push message through the gateway. Failures map to
// errs.ErrUpstreamUnavailable; callers treat push as best-effort.
func (s *Sender) SendPush(ctx context.Context, userID kernel.UUID, title, message string) error {
	if s.pushURL == "" {
		return nil
	}

	payload, err := json.Marshal(pushRequest{
		UserID:  userID.String(),
		Title:   title,
		Message: message,
	})
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.pushURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := s.httpClient.Do(request)
	if err != nil {
		return errs.NewUpstreamUnavailableErrorWithCause("push gateway", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return errs.NewUpstreamUnavailableErrorWithCause("push gateway",
			fmt.Errorf("unexpected status %d", response.StatusCode))
	}

	s.logger.DebugContext(ctx, "push sent", "user_id", userID.String())
	return nil
}

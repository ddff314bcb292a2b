// Package http adapts the generated REST surface to the application's
// command and query handlers, translating domain errors to status codes.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var _ servers.ServerInterface = &Server{}

// Server implements the generated ServerInterface. It owns no business
// logic: requests are bound, handed to a handler, and the resulting domain
// error is mapped onto the HTTP taxonomy.
type Server struct {
	startSearchHandler          commands.StartSearchCommandHandler
	restartSearchHandler        commands.RestartSearchCommandHandler
	acceptOrderHandler          commands.AcceptOrderCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	updateDriverLocationHandler commands.UpdateDriverLocationCommandHandler

	getSearchStatusHandler queries.GetSearchStatusQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	startSearchHandler commands.StartSearchCommandHandler,
	restartSearchHandler commands.RestartSearchCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	updateDriverLocationHandler commands.UpdateDriverLocationCommandHandler,
	getSearchStatusHandler queries.GetSearchStatusQueryHandler,
) *Server {
	return &Server{
		startSearchHandler:          startSearchHandler,
		restartSearchHandler:        restartSearchHandler,
		acceptOrderHandler:          acceptOrderHandler,
		cancelOrderHandler:          cancelOrderHandler,
		updateDriverLocationHandler: updateDriverLocationHandler,
		getSearchStatusHandler:      getSearchStatusHandler,
	}
}

// DispatchOrder handles POST /api/v1/orders/{orderId}/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, err)
	}

	var body servers.DispatchRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, err)
	}

	var originHint *kernel.GeoPoint
	if body.Latitude != nil && body.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*body.Latitude, *body.Longitude)
		if pointErr != nil {
			return badRequest(ctx, pointErr)
		}
		originHint = &point
	} else if body.Latitude != nil || body.Longitude != nil {
		return badRequest(ctx, errs.NewValueIsRequiredError("latitude and longitude"))
	}

	command, err := commands.NewStartSearchCommand(orderID, originHint)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.startSearchHandler.Handle(ctx.Request().Context(), command); err != nil {
		return domainError(ctx, err)
	}

	return s.respondSearchStatus(ctx, orderID)
}

// AcceptOrder handles POST /api/v1/orders/{orderId}/accept.
func (s *Server) AcceptOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, err)
	}

	var body servers.AcceptOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, err)
	}

	driverID, err := kernel.UUIDFromBytes(body.DriverId[:])
	if err != nil {
		return badRequest(ctx, err)
	}

	command, err := commands.NewAcceptOrderCommand(orderID, driverID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.acceptOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// RestartSearch handles POST /api/v1/orders/{orderId}/search/restart.
func (s *Server) RestartSearch(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, err)
	}

	command, err := commands.NewRestartSearchCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.restartSearchHandler.Handle(ctx.Request().Context(), command); err != nil {
		return domainError(ctx, err)
	}

	return s.respondSearchStatus(ctx, orderID)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, err)
	}

	command, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetSearchStatus handles GET /api/v1/orders/{orderId}/search.
func (s *Server) GetSearchStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, err)
	}

	return s.respondSearchStatus(ctx, orderID)
}

// UpdateDriverLocation handles PUT /api/v1/drivers/{driverId}/location.
func (s *Server) UpdateDriverLocation(ctx echo.Context, driverId openapi_types.UUID) error {
	driverID, err := kernel.UUIDFromBytes(driverId[:])
	if err != nil {
		return badRequest(ctx, err)
	}

	var body servers.DriverLocation
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, err)
	}

	point, err := kernel.NewGeoPoint(body.Latitude, body.Longitude)
	if err != nil {
		return badRequest(ctx, err)
	}

	command, err := commands.NewUpdateDriverLocationCommand(driverID, point)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.updateDriverLocationHandler.Handle(ctx.Request().Context(), command); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

func (s *Server) respondSearchStatus(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetSearchStatusQuery(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.getSearchStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	payload := servers.SearchStatus{
		OrderId:         response.OrderID.Bytes(),
		Status:          response.Status,
		SearchStatus:    response.SearchStatus,
		SearchStartedAt: response.SearchStartedAt,
		SearchExpiresAt: response.SearchExpiresAt,
	}
	if response.DriverID != nil {
		driverUUID := response.DriverID.Bytes()
		payload.DriverId = &driverUUID
	}

	return ctx.JSON(http.StatusOK, payload)
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// domainError maps the domain error taxonomy onto HTTP status codes.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrInvalidState):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		code = http.StatusBadGateway
	}

	return ctx.JSON(code, servers.Error{
		Code:    int32(code),
		Message: err.Error(),
	})
}

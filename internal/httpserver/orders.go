package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/messmate/backend/internal/middleware"
	"github.com/messmate/backend/internal/service"
	"github.com/messmate/backend/internal/transport"
	"github.com/messmate/backend/pkg/logging"
)

type OrderHandler struct {
	Svc *service.OrderService
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create")

	actor, ok := middleware.ActorFromEchoContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, remaining, err := h.Svc.AuthorizeOrder(ctx, actor, req.MealType, req.Credits, req.TableQR, req.Items)
	if err != nil {
		he := httpError(err)
		if he.Code >= 500 {
			l.Error("create_order_error", "status", he.Code, "error", err)
		} else {
			l.Warn("create_order_error", "status", he.Code, "error", err)
		}
		return he
	}

	l.Info("create_order_success", "order_id", order.ID, "credits_used", order.CreditsUsed, "remaining", remaining)
	return c.JSON(http.StatusCreated, transport.CreateOrderResponse{
		OrderID:   order.ID,
		Status:    string(order.Status),
		Remaining: remaining,
	})
}

func (h *OrderHandler) AdvanceStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.advance_status")

	actor, ok := middleware.ActorFromEchoContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req transport.AdvanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.AdvanceStatus(ctx, actor, uint(orderID), req.Status)
	if err != nil {
		he := httpError(err)
		l.Warn("advance_status_error", "status", he.Code, "order_id", orderID, "error", err)
		return he
	}

	l.Info("advance_status_success", "order_id", order.ID, "new_status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromEchoContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.GetOrder(ctx, actor, uint(orderID))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromEchoContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	orders, err := h.Svc.ListOrders(ctx, actor, limit, offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

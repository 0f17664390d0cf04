package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/messmate/backend/internal/middleware"
	"github.com/messmate/backend/internal/service"
	"github.com/messmate/backend/internal/transport"
	"github.com/messmate/backend/pkg/logging"
)

type CardHandler struct {
	Svc *service.CardService
}

func (h *CardHandler) Recharge(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cards.recharge")

	actor, ok := middleware.ActorFromEchoContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.RechargeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("recharge_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	card, err := h.Svc.Recharge(ctx, actor, req.UserID, req.Credits, req.Amount, req.PaymentType, req.Reference)
	if err != nil {
		he := httpError(err)
		if he.Code >= 500 {
			l.Error("recharge_error", "status", he.Code, "error", err)
		} else {
			l.Warn("recharge_error", "status", he.Code, "error", err)
		}
		return he
	}

	l.Info("recharge_success", "card_id", card.ID, "user_id", card.UserID)
	return c.JSON(http.StatusOK, card)
}

func (h *CardHandler) Balance(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromEchoContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	card, err := h.Svc.Balance(ctx, actor)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, card)
}

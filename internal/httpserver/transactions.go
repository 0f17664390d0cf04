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

type TransactionHandler struct {
	Svc *service.TransactionService
}

func (h *TransactionHandler) Record(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "transactions.record")

	actor, ok := middleware.ActorFromEchoContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.RecordTransactionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("record_transaction_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	txn, err := h.Svc.Record(ctx, actor, req.UserID, req.Amount, req.PaymentType, req.Reference, req.OrderID)
	if err != nil {
		he := httpError(err)
		if he.Code >= 500 {
			l.Error("record_transaction_error", "status", he.Code, "error", err)
		} else {
			l.Warn("record_transaction_error", "status", he.Code, "error", err)
		}
		return he
	}

	l.Info("record_transaction_success", "transaction_id", txn.ID, "user_id", txn.UserID)
	return c.JSON(http.StatusCreated, txn)
}

func (h *TransactionHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromEchoContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	txns, err := h.Svc.List(ctx, actor, limit, offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, txns)
}

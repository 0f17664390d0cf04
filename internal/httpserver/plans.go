package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/messmate/backend/internal/middleware"
	"github.com/messmate/backend/internal/service"
	"github.com/messmate/backend/internal/transport"
	"github.com/messmate/backend/pkg/logging"
)

type PlanHandler struct {
	Svc *service.PlanService
}

func (h *PlanHandler) AssignPlan(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "plans.assign")

	actor, ok := middleware.ActorFromEchoContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AssignPlanRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("assign_plan_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sp, err := h.Svc.AssignPlan(ctx, actor, req.UserID, req.PlanID, req.PaymentMethod, req.Reference)
	if err != nil {
		he := httpError(err)
		if he.Code >= 500 {
			l.Error("assign_plan_error", "status", he.Code, "error", err)
		} else {
			l.Warn("assign_plan_error", "status", he.Code, "error", err)
		}
		return he
	}

	l.Info("assign_plan_success", "student_plan_id", sp.ID, "user_id", sp.UserID)
	return c.JSON(http.StatusCreated, transport.AssignPlanResponse{
		StudentPlanID: sp.ID,
		UserID:        sp.UserID,
		PlanID:        sp.PlanID,
		StartDate:     sp.StartDate.Format(time.RFC3339),
		EndDate:       sp.EndDate.Format(time.RFC3339),
	})
}

func (h *PlanHandler) ActivePlan(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromEchoContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	sp, err := h.Svc.ActivePlan(ctx, actor)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sp)
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/messmate/backend/internal/middleware"
	"github.com/messmate/backend/internal/models"
)

type Deps struct {
	PlanHandler        *PlanHandler
	OrderHandler       *OrderHandler
	TransactionHandler *TransactionHandler
	CardHandler        *CardHandler
	JWTSecret          []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1", mw.Auth(d.JWTSecret))

	plans := v1.Group("/plans")
	plans.POST("/assign", d.PlanHandler.AssignPlan, mw.RequireRole(models.RoleAdmin))
	plans.GET("/active", d.PlanHandler.ActivePlan, mw.RequireRole(models.RoleStudent))

	orders := v1.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder, mw.RequireRole(models.RoleStudent))
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.PATCH("/:id/status", d.OrderHandler.AdvanceStatus, mw.RequireRole(models.RoleWaiter, models.RoleAdmin))

	txns := v1.Group("/transactions")
	txns.POST("", d.TransactionHandler.Record, mw.RequireRole(models.RoleAdmin, models.RoleWaiter))
	txns.GET("", d.TransactionHandler.List, mw.RequireRole(models.RoleAdmin))

	cards := v1.Group("/cards")
	cards.POST("/recharge", d.CardHandler.Recharge, mw.RequireRole(models.RoleAdmin))
	cards.GET("/balance", d.CardHandler.Balance)
}

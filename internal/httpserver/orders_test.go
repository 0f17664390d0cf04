package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/messmate/backend/internal/middleware"
	"github.com/messmate/backend/internal/models"
	"github.com/messmate/backend/internal/repo"
	"github.com/messmate/backend/internal/service"
	"github.com/messmate/backend/internal/transport"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repo.Migrate(context.Background(), db))
	return db
}

func setupHandlerEnv(t *testing.T) (*OrderHandler, *gorm.DB, service.Actor) {
	t.Helper()

	db := initTestDB(t)
	r := &repo.GormRepo{DB: db}

	student := models.User{Name: "S", Email: "s@example.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)
	table := models.Table{Number: "T1", QRCode: "TABLE_01"}
	require.NoError(t, db.Create(&table).Error)
	plan := models.Plan{Name: "Monthly", Price: 3000, BreakfastCredits: 10, LunchCredits: 10, DinnerCredits: 10}
	require.NoError(t, db.Create(&plan).Error)

	plans := &service.PlanService{Repo: r}
	_, err := plans.AssignPlan(context.Background(), service.Actor{UserID: 999, Role: models.RoleAdmin},
		student.ID, plan.ID, "Cash", "")
	require.NoError(t, err)

	handler := &OrderHandler{Svc: &service.OrderService{Repo: r}}
	return handler, db, service.Actor{UserID: student.ID, Role: models.RoleStudent}
}

func postOrder(t *testing.T, handler *OrderHandler, actor service.Actor, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetActor(c, actor)

	if err := handler.CreateOrder(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestCreateOrderHandler(t *testing.T) {
	t.Parallel()

	handler, db, actor := setupHandlerEnv(t)

	rec := postOrder(t, handler, actor, transport.CreateOrderRequest{
		MealType: "breakfast",
		Credits:  3,
		TableQR:  "TABLE_01",
		Items:    []string{"Idli"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp transport.CreateOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.OrderID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 7, resp.Remaining)

	var order models.Order
	require.NoError(t, db.First(&order, resp.OrderID).Error)
	assert.Equal(t, models.OrderPending, order.Status)
}

func TestCreateOrderHandler_InsufficientCredits(t *testing.T) {
	t.Parallel()

	handler, _, actor := setupHandlerEnv(t)

	for i := 0; i < 2; i++ {
		rec := postOrder(t, handler, actor, transport.CreateOrderRequest{
			MealType: "lunch", Credits: 4, TableQR: "TABLE_01", Items: []string{"Thali"},
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := postOrder(t, handler, actor, transport.CreateOrderRequest{
		MealType: "lunch", Credits: 3, TableQR: "TABLE_01", Items: []string{"Thali"},
	})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}

func TestCreateOrderHandler_Validation(t *testing.T) {
	t.Parallel()

	handler, _, actor := setupHandlerEnv(t)

	rec := postOrder(t, handler, actor, transport.CreateOrderRequest{
		MealType: "brunch", Credits: 1, TableQR: "TABLE_01", Items: []string{"Idli"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postOrder(t, handler, actor, transport.CreateOrderRequest{
		MealType: "lunch", Credits: 1, TableQR: "TABLE_99", Items: []string{"Idli"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

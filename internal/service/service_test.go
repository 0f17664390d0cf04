package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/messmate/backend/internal/models"
	"github.com/messmate/backend/internal/repo"
)

var userSeq atomic.Uint64

// InitTestDB opens an in-memory sqlite database. The pool is capped at
// one connection so every goroutine shares the same memory database and
// concurrent transactions queue instead of hitting busy errors.
func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repo.Migrate(context.Background(), db), "failed to migrate tables")
	return db
}

func newRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return &repo.GormRepo{DB: InitTestDB(t)}
}

func createUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	user := models.User{
		Name:         "Test " + string(role),
		Email:        fmt.Sprintf("%s-%d@example.com", role, userSeq.Add(1)),
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createPlan(t *testing.T, db *gorm.DB, breakfast, lunch, dinner int, price float64) *models.Plan {
	t.Helper()
	plan := models.Plan{
		Name:             "Monthly",
		Price:            price,
		BreakfastCredits: breakfast,
		LunchCredits:     lunch,
		DinnerCredits:    dinner,
	}
	require.NoError(t, db.Create(&plan).Error)
	return &plan
}

func createTable(t *testing.T, db *gorm.DB, number, qr string) *models.Table {
	t.Helper()
	table := models.Table{Number: number, QRCode: qr, Capacity: 4}
	require.NoError(t, db.Create(&table).Error)
	return &table
}

func adminActor() Actor  { return Actor{UserID: 9001, Role: models.RoleAdmin} }
func waiterActor() Actor { return Actor{UserID: 9002, Role: models.RoleWaiter} }

func studentActor(u *models.User) Actor {
	return Actor{UserID: u.ID, Role: models.RoleStudent}
}

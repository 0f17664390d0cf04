package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/messmate/backend/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

// Migrate creates the schema. Beyond AutoMigrate it installs a partial
// unique index so "at most one active plan per user" holds at the
// storage layer, not just in application reads. Both postgres and
// sqlite support partial indexes, so tests exercise the same constraint.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.StudentPlan{},
		&models.Order{},
		&models.Transaction{},
		&models.Table{},
		&models.Card{},
	); err != nil {
		return err
	}

	return db.WithContext(ctx).Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_student_plans_one_active
		 ON student_plans (user_id) WHERE status = 'active'`,
	).Error
}

func (r *GormRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

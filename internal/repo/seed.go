package repo

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/messmate/backend/internal/models"
)

// SeedDefaultAdmin creates the bootstrap admin account if no user with
// the given email exists yet. Runs at startup after Migrate.
func SeedDefaultAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	return db.WithContext(ctx).Create(&admin).Error
}

package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/messmate/backend/internal/models"
)

func (r *GormRepo) GetCard(ctx context.Context, userID uint) (*models.Card, error) {
	var card models.Card
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// CreditCard adds recharged credits to a user's card, creating the card
// row on first recharge. The increment is a single guarded expression so
// concurrent recharges accumulate instead of clobbering each other.
func CreditCard(tx *gorm.DB, userID uint, credits int) (*models.Card, error) {
	var card models.Card
	err := tx.Where("user_id = ?", userID).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		card = models.Card{UserID: userID}
		if err := tx.Create(&card).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	res := tx.Model(&models.Card{}).
		Where("id = ?", card.ID).
		UpdateColumns(map[string]interface{}{
			"balance_credits": gorm.Expr("balance_credits + ?", credits),
			"total_credits":   gorm.Expr("total_credits + ?", credits),
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if err := tx.First(&card, card.ID).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/messmate/backend/internal/models"
)

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// TransitionOrder moves an order from one status to another with a
// guarded update, so a concurrent transition on the same order cannot
// be applied twice. Returns false when the order was no longer in the
// expected status.
func TransitionOrder(tx *gorm.DB, orderID uint, from, to models.OrderStatus) (bool, error) {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

package repo

import (
	"context"

	"github.com/messmate/backend/internal/models"
)

func (r *GormRepo) ListTransactions(ctx context.Context, limit, offset int) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

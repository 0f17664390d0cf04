package repo

import (
	"context"

	"github.com/messmate/backend/internal/models"
)

// ResolveTableQR maps a scanned QR string to its table row.
func (r *GormRepo) ResolveTableQR(ctx context.Context, qr string) (*models.Table, error) {
	var table models.Table
	if err := r.DB.WithContext(ctx).Where("qr_code = ?", qr).First(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

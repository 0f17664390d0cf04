package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/messmate/backend/internal/models"
	"github.com/messmate/backend/internal/repo"
)

type TransactionService struct {
	Repo *repo.GormRepo
}

// Record appends a completed money-movement row. The ledger exposes no
// update or delete: corrections are new rows. When the payment settles a
// specific order (waiter support billing), orderID links the row to it.
func (s *TransactionService) Record(ctx context.Context, actor Actor, userID uint, amount float64, paymentType, reference string, orderID *uint) (*models.Transaction, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleWaiter {
		return nil, fmt.Errorf("%w: staff role required", ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if paymentType == "" {
		return nil, fmt.Errorf("%w: payment type required", ErrValidation)
	}

	if _, err := s.Repo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	if orderID != nil {
		order, err := s.Repo.GetOrder(ctx, *orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: order %d", ErrNotFound, *orderID)
			}
			return nil, err
		}
		if order.UserID != userID {
			return nil, fmt.Errorf("%w: order %d does not belong to user %d", ErrValidation, *orderID, userID)
		}
	}

	txn := models.Transaction{
		UserID:      userID,
		Amount:      amount,
		PaymentType: paymentType,
		Reference:   reference,
		Status:      models.TransactionCompleted,
		OrderID:     orderID,
	}
	if err := s.Repo.DB.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *TransactionService) List(ctx context.Context, actor Actor, limit, offset int) ([]models.Transaction, error) {
	if actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", ErrValidation)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListTransactions(ctx, limit, offset)
}

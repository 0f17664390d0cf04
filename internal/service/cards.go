package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/messmate/backend/internal/models"
	"github.com/messmate/backend/internal/repo"
)

// CardService is the legacy balance-credit flow. It shares the
// transaction ledger with the plan path but never touches StudentPlan
// rows; the two credit systems stay separate bounded contexts.
type CardService struct {
	Repo *repo.GormRepo
}

func (s *CardService) Recharge(ctx context.Context, actor Actor, userID uint, credits int, amount float64, paymentType, reference string) (*models.Card, error) {
	if actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", ErrValidation)
	}
	if credits <= 0 {
		return nil, fmt.Errorf("%w: credits must be positive", ErrValidation)
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

	var card *models.Card
	err := withRetry(func() error {
		return s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			card, err = repo.CreditCard(tx, userID, credits)
			if err != nil {
				return err
			}
			txn := models.Transaction{
				UserID:      userID,
				Amount:      amount,
				PaymentType: paymentType,
				Reference:   reference,
				Status:      models.TransactionCompleted,
			}
			return tx.Create(&txn).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) Balance(ctx context.Context, actor Actor) (*models.Card, error) {
	card, err := s.Repo.GetCard(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no card", ErrNotFound)
		}
		return nil, err
	}
	return card, nil
}

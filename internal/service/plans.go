package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/messmate/backend/internal/models"
	"github.com/messmate/backend/internal/repo"
)

// planTermMonths is the fixed validity window of an assigned plan.
const planTermMonths = 3

type PlanService struct {
	Repo *repo.GormRepo
}

// AssignPlan grants a catalog plan to a user: it inserts the StudentPlan
// allotment with remaining == credits for all three meal types and
// records the purchase transaction, in one storage transaction. The
// partial unique index on active plans turns a lost race between two
// concurrent assignments into ErrPlanAlreadyActive instead of a second
// active row.
func (s *PlanService) AssignPlan(ctx context.Context, actor Actor, userID, planID uint, paymentType, reference string) (*models.StudentPlan, error) {
	if actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", ErrValidation)
	}
	if paymentType == "" {
		return nil, fmt.Errorf("%w: payment type required", ErrValidation)
	}

	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	if user.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: user %d is not a plan holder", ErrValidation, userID)
	}

	plan, err := s.Repo.GetPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: plan %d", ErrNotFound, planID)
		}
		return nil, err
	}

	if _, err := s.Repo.ActiveStudentPlan(ctx, userID); err == nil {
		return nil, fmt.Errorf("%w: user %d", ErrPlanAlreadyActive, userID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var sp models.StudentPlan
	err = withRetry(func() error {
		return s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			now := time.Now()
			sp = models.StudentPlan{
				UserID:             userID,
				PlanID:             plan.ID,
				BreakfastCredits:   plan.BreakfastCredits,
				BreakfastRemaining: plan.BreakfastCredits,
				LunchCredits:       plan.LunchCredits,
				LunchRemaining:     plan.LunchCredits,
				DinnerCredits:      plan.DinnerCredits,
				DinnerRemaining:    plan.DinnerCredits,
				StartDate:          now,
				EndDate:            now.AddDate(0, planTermMonths, 0),
				Status:             models.PlanActive,
			}
			if err := tx.Create(&sp).Error; err != nil {
				return err
			}

			txn := models.Transaction{
				UserID:        userID,
				Amount:        plan.Price,
				PaymentType:   paymentType,
				Reference:     reference,
				Status:        models.TransactionCompleted,
				StudentPlanID: &sp.ID,
			}
			return tx.Create(&txn).Error
		})
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: user %d", ErrPlanAlreadyActive, userID)
		}
		return nil, err
	}
	return &sp, nil
}

// ActivePlan returns the caller's active allotment.
func (s *PlanService) ActivePlan(ctx context.Context, actor Actor) (*models.StudentPlan, error) {
	sp, err := s.Repo.ActiveStudentPlan(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no active plan", ErrNotFound)
		}
		return nil, err
	}
	return sp, nil
}

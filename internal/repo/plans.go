package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/messmate/backend/internal/models"
)

func (r *GormRepo) GetPlan(ctx context.Context, id uint) (*models.Plan, error) {
	var plan models.Plan
	if err := r.DB.WithContext(ctx).First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *GormRepo) ActiveStudentPlan(ctx context.Context, userID uint) (*models.StudentPlan, error) {
	var sp models.StudentPlan
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.PlanActive).
		First(&sp).Error
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func remainingColumn(meal models.MealType) string {
	switch meal {
	case models.MealBreakfast:
		return "breakfast_remaining"
	case models.MealLunch:
		return "lunch_remaining"
	case models.MealDinner:
		return "dinner_remaining"
	}
	return ""
}

// DebitCredits decrements one meal-type balance with a guarded update:
// the WHERE clause re-checks sufficiency so two concurrent debits can
// never both pass a stale read and overdraw. Returns false when the
// guard rejected the decrement (insufficient balance, or the plan left
// the active state in the meantime).
func DebitCredits(tx *gorm.DB, planID uint, meal models.MealType, amount int) (bool, error) {
	col := remainingColumn(meal)
	res := tx.Model(&models.StudentPlan{}).
		Where("id = ? AND status = ? AND "+col+" >= ?", planID, models.PlanActive, amount).
		Update(col, gorm.Expr(col+" - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

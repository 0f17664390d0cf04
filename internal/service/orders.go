package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/messmate/backend/internal/models"
	"github.com/messmate/backend/internal/repo"
	"github.com/messmate/backend/pkg/logging"
)

const (
	minCreditsPerOrder = 1
	maxCreditsPerOrder = 4
)

// Publisher delivers order lifecycle events to the kitchen/waiter feed.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type OrderService struct {
	Repo   *repo.GormRepo
	Events Publisher
}

// AuthorizeOrder validates the request, debits the caller's active plan
// and creates the order, all inside one storage transaction. The debit
// is a guarded decrement, so a concurrent order against the same plan
// either sees the reduced balance or loses the guard; the balance can
// never go negative. The debit is permanent: cancelling the order later
// does not restore it.
func (s *OrderService) AuthorizeOrder(ctx context.Context, actor Actor, mealType string, creditsRequested int, tableQR string, items []string) (*models.Order, int, error) {
	if actor.Role != models.RoleStudent {
		return nil, 0, fmt.Errorf("%w: only plan holders can place orders", ErrValidation)
	}
	meal, ok := models.ParseMealType(mealType)
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown meal type %q", ErrValidation, mealType)
	}
	if creditsRequested < minCreditsPerOrder || creditsRequested > maxCreditsPerOrder {
		return nil, 0, fmt.Errorf("%w: credits must be between %d and %d", ErrValidation, minCreditsPerOrder, maxCreditsPerOrder)
	}
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("%w: items required", ErrValidation)
	}

	table, err := s.Repo.ResolveTableQR(ctx, tableQR)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("%w: table %q", ErrNotFound, tableQR)
		}
		return nil, 0, err
	}

	serialized, err := json.Marshal(items)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: items not serializable", ErrValidation)
	}

	var order models.Order
	var remaining int
	err = withRetry(func() error {
		return s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var sp models.StudentPlan
			err := tx.Where("user_id = ? AND status = ?", actor.UserID, models.PlanActive).First(&sp).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: no active plan", ErrNotFound)
				}
				return err
			}
			if sp.EndDate.Before(time.Now()) {
				return fmt.Errorf("%w: no active plan", ErrNotFound)
			}

			debited, err := repo.DebitCredits(tx, sp.ID, meal, creditsRequested)
			if err != nil {
				return err
			}
			if !debited {
				// The guard rejected: either the balance is short, or the
				// plan left the active state since the read above.
				if err := tx.First(&sp, sp.ID).Error; err != nil {
					return err
				}
				if sp.Status != models.PlanActive {
					return fmt.Errorf("%w: no active plan", ErrNotFound)
				}
				return fmt.Errorf("%w: %d remaining for %s", ErrInsufficientCredits, sp.Remaining(meal), meal)
			}

			if err := tx.First(&sp, sp.ID).Error; err != nil {
				return err
			}
			remaining = sp.Remaining(meal)

			order = models.Order{
				UserID:      actor.UserID,
				TableID:     table.ID,
				TableQR:     tableQR,
				MealType:    meal,
				CreditsUsed: creditsRequested,
				Items:       string(serialized),
				Status:      models.OrderPending,
			}
			return tx.Create(&order).Error
		})
	})
	if err != nil {
		return nil, 0, err
	}

	s.publish(ctx, "order_created", &order)
	return &order, remaining, nil
}

// AdvanceStatus moves an order through its fulfillment lifecycle. It
// never reads or writes credit balances.
func (s *OrderService) AdvanceStatus(ctx context.Context, actor Actor, orderID uint, newStatus string) (*models.Order, error) {
	if actor.Role != models.RoleWaiter && actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: staff role required", ErrValidation)
	}
	to, ok := models.ParseOrderStatus(newStatus)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		order, err := s.Repo.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return nil, err
		}
		if !models.CanTransition(order.Status, to) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, to)
		}

		moved, err := repo.TransitionOrder(s.Repo.DB.WithContext(ctx), orderID, order.Status, to)
		if err != nil {
			return nil, err
		}
		if moved {
			order.Status = to
			s.publish(ctx, "order_status_changed", order)
			return order, nil
		}
		// Someone advanced the order between the read and the update;
		// re-read and re-validate the transition.
	}
	return nil, fmt.Errorf("%w: order %d contended", ErrConflict, orderID)
}

func (s *OrderService) GetOrder(ctx context.Context, actor Actor, orderID uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	if actor.Role == models.RoleStudent && order.UserID != actor.UserID {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, actor Actor, limit, offset int) ([]models.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListOrders(ctx, actor.UserID, limit, offset)
}

// publish is best effort: a dead broker must not fail an order that is
// already committed.
func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	if s.Events == nil {
		return
	}
	event := map[string]interface{}{
		"type":      eventType,
		"order_id":  order.ID,
		"user_id":   order.UserID,
		"table_id":  order.TableID,
		"meal_type": order.MealType,
		"status":    order.Status,
	}
	if err := s.Events.Publish(ctx, fmt.Sprintf("order-%d", order.ID), event); err != nil {
		logging.FromContext(ctx).Warn("order_event_publish_failed", "type", eventType, "order_id", order.ID, "error", err)
	}
}

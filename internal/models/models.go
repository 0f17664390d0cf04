package models

import (
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleWaiter  Role = "waiter"
	RoleStudent Role = "student"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         Role   `gorm:"not null"                 json:"role"`
}

// Plan is an immutable catalog entry; the admin CRUD that manages it
// lives outside this service.
type Plan struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string  `gorm:"not null"                 json:"name"`
	Price            float64 `gorm:"not null"                 json:"price"`
	BreakfastCredits int     `gorm:"not null"                 json:"breakfast_credits"`
	LunchCredits     int     `gorm:"not null"                 json:"lunch_credits"`
	DinnerCredits    int     `gorm:"not null"                 json:"dinner_credits"`
}

type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanExpired   PlanStatus = "expired"
	PlanCancelled PlanStatus = "cancelled"
)

// StudentPlan is a time-bounded grant of plan credits to one user.
// The *_credits columns are fixed at assignment; only *_remaining move,
// and only through the order debit path. At most one active row per user
// is enforced by a partial unique index (see repo.Migrate).
type StudentPlan struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uint       `gorm:"index;not null"           json:"user_id"`
	PlanID             uint       `gorm:"not null"                 json:"plan_id"`
	BreakfastCredits   int        `gorm:"not null"                 json:"breakfast_credits"`
	BreakfastRemaining int        `gorm:"not null"                 json:"breakfast_remaining"`
	LunchCredits       int        `gorm:"not null"                 json:"lunch_credits"`
	LunchRemaining     int        `gorm:"not null"                 json:"lunch_remaining"`
	DinnerCredits      int        `gorm:"not null"                 json:"dinner_credits"`
	DinnerRemaining    int        `gorm:"not null"                 json:"dinner_remaining"`
	StartDate          time.Time  `gorm:"not null"                 json:"start_date"`
	EndDate            time.Time  `gorm:"not null"                 json:"end_date"`
	Status             PlanStatus `gorm:"not null;default:active"  json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// ParseMealType validates free-form input at the edge before it enters
// the ledger.
func ParseMealType(s string) (MealType, bool) {
	switch MealType(s) {
	case MealBreakfast, MealLunch, MealDinner:
		return MealType(s), true
	}
	return "", false
}

// Remaining returns the balance for one meal type.
func (p *StudentPlan) Remaining(meal MealType) int {
	switch meal {
	case MealBreakfast:
		return p.BreakfastRemaining
	case MealLunch:
		return p.LunchRemaining
	case MealDinner:
		return p.DinnerRemaining
	}
	return 0
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderPaid, OrderCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderServed},
	OrderServed:    {OrderPaid},
}

// CanTransition reports whether an order may move from one status to
// another. Paid and cancelled are terminal.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint        `gorm:"index;not null"           json:"user_id"`
	TableID     uint        `gorm:"not null"                 json:"table_id"`
	TableQR     string      `gorm:"not null"                 json:"table_qr"`
	MealType    MealType    `gorm:"not null"                 json:"meal_type"`
	CreditsUsed int         `gorm:"not null;check:credits_used>0" json:"credits_used"`
	Items       string      `gorm:"not null"                 json:"items"`
	Status      OrderStatus `gorm:"not null;default:pending" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
)

// Transaction is an append-only money-movement record. PaymentType stays
// free-form display text ("Cash", "UPI - UTR:123"); the optional
// StudentPlanID/OrderID links tie a row to the event that caused it.
type Transaction struct {
	ID            uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint              `gorm:"index;not null"           json:"user_id"`
	Amount        float64           `gorm:"not null"                 json:"amount"`
	PaymentType   string            `gorm:"not null"                 json:"payment_type"`
	Reference     string            `json:"reference,omitempty"`
	Status        TransactionStatus `gorm:"not null"                 json:"status"`
	StudentPlanID *uint             `json:"student_plan_id,omitempty"`
	OrderID       *uint             `json:"order_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

type Table struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Number   string `gorm:"unique;not null"          json:"number"`
	QRCode   string `gorm:"uniqueIndex;not null"     json:"qr_code"`
	Capacity int    `gorm:"default:4"                json:"capacity"`
}

// Card is the legacy balance-credit ledger. It is a separate bounded
// context: the plan/order path never reads or writes it.
type Card struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null"     json:"user_id"`
	BalanceCredits int       `gorm:"not null;default:0"       json:"balance_credits"`
	TotalCredits   int       `gorm:"not null;default:0"       json:"total_credits"`
	UpdatedAt      time.Time `json:"updated_at"`
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/messmate/backend/internal/models"
)

func TestRecordTransaction(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	svc := &TransactionService{Repo: r}
	ctx := context.Background()

	student := createUser(t, r.DB, models.RoleStudent)

	txn, err := svc.Record(ctx, waiterActor(), student.ID, 250, "UPI - UTR:778899", "", nil)
	require.NoError(t, err)
	assert.NotZero(t, txn.ID)
	assert.Equal(t, models.TransactionCompleted, txn.Status)
	assert.Equal(t, 250.0, txn.Amount)
	assert.Equal(t, "UPI - UTR:778899", txn.PaymentType)
	assert.Nil(t, txn.StudentPlanID)
	assert.Nil(t, txn.OrderID)
}

func TestRecordTransaction_Validation(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	svc := &TransactionService{Repo: r}
	ctx := context.Background()

	student := createUser(t, r.DB, models.RoleStudent)

	tests := []struct {
		name        string
		actor       Actor
		userID      uint
		amount      float64
		paymentType string
		wantErr     error
	}{
		{name: "zero amount", actor: adminActor(), userID: student.ID, amount: 0, paymentType: "Cash", wantErr: ErrValidation},
		{name: "negative amount", actor: adminActor(), userID: student.ID, amount: -10, paymentType: "Cash", wantErr: ErrValidation},
		{name: "empty payment type", actor: adminActor(), userID: student.ID, amount: 100, paymentType: "", wantErr: ErrValidation},
		{name: "unknown user", actor: adminActor(), userID: 99999, amount: 100, paymentType: "Cash", wantErr: ErrNotFound},
		{name: "student actor", actor: studentActor(student), userID: student.ID, amount: 100, paymentType: "Cash", wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(ctx, tt.actor, tt.userID, tt.amount, tt.paymentType, "", nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	var count int64
	require.NoError(t, r.DB.Model(&models.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "rejected requests must not append rows")
}

func TestRecordTransaction_OrderLink(t *testing.T) {
	t.Parallel()

	env := setupOrderEnv(t, 10, 10, 10)
	svc := &TransactionService{Repo: env.repo}
	ctx := context.Background()

	order, _, err := env.orders.AuthorizeOrder(ctx, studentActor(env.student), "lunch", 2, "TABLE_01", []string{"Thali"})
	require.NoError(t, err)

	txn, err := svc.Record(ctx, waiterActor(), env.student.ID, 120, "Cash", "", &order.ID)
	require.NoError(t, err)
	require.NotNil(t, txn.OrderID)
	assert.Equal(t, order.ID, *txn.OrderID)

	t.Run("order must belong to the user", func(t *testing.T) {
		other := createUser(t, env.repo.DB, models.RoleStudent)
		_, err := svc.Record(ctx, waiterActor(), other.ID, 120, "Cash", "", &order.ID)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown order", func(t *testing.T) {
		missing := uint(99999)
		_, err := svc.Record(ctx, waiterActor(), env.student.ID, 120, "Cash", "", &missing)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListTransactions_AdminOnly(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	svc := &TransactionService{Repo: r}
	ctx := context.Background()

	student := createUser(t, r.DB, models.RoleStudent)
	_, err := svc.Record(ctx, adminActor(), student.ID, 100, "Cash", "", nil)
	require.NoError(t, err)

	txns, err := svc.List(ctx, adminActor(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, txns, 1)

	_, err = svc.List(ctx, waiterActor(), 0, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMealType(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"breakfast", "lunch", "dinner"} {
		meal, ok := ParseMealType(valid)
		assert.True(t, ok, valid)
		assert.EqualValues(t, valid, meal)
	}

	for _, invalid := range []string{"", "brunch", "Lunch", "supper"} {
		_, ok := ParseMealType(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	_, ok := ParseOrderStatus("preparing")
	assert.True(t, ok)
	_, ok = ParseOrderStatus("delivered")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := [][2]OrderStatus{
		{OrderPending, OrderPreparing},
		{OrderPending, OrderCancelled},
		{OrderPreparing, OrderReady},
		{OrderPreparing, OrderCancelled},
		{OrderReady, OrderServed},
		{OrderServed, OrderPaid},
	}
	for _, pair := range allowed {
		assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	rejected := [][2]OrderStatus{
		{OrderPending, OrderServed},
		{OrderPending, OrderPaid},
		{OrderReady, OrderCancelled},
		{OrderServed, OrderCancelled},
		{OrderPaid, OrderPending},
		{OrderCancelled, OrderPreparing},
		{OrderPreparing, OrderPending},
	}
	for _, pair := range rejected {
		assert.False(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}
}

func TestStudentPlanRemaining(t *testing.T) {
	t.Parallel()

	sp := StudentPlan{BreakfastRemaining: 1, LunchRemaining: 2, DinnerRemaining: 3}
	assert.Equal(t, 1, sp.Remaining(MealBreakfast))
	assert.Equal(t, 2, sp.Remaining(MealLunch))
	assert.Equal(t, 3, sp.Remaining(MealDinner))
	assert.Equal(t, 0, sp.Remaining(MealType("brunch")))
}

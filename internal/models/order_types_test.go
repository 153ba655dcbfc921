package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestTransitionAllowed(t *testing.T) {
	statuses := []OrderStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

	allowed := map[[2]OrderStatus]bool{
		{StatusPending, StatusInProgress}:   true,
		{StatusPending, StatusCancelled}:    true,
		{StatusInProgress, StatusCompleted}: true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			got := TransitionAllowed(from, to)
			want := allowed[[2]OrderStatus{from, to}]
			assert.Equal(t, want, got, "transition %s -> %s", from, to)
		}
	}
}

func TestTransitionAllowed_InProgressCannotBeCancelled(t *testing.T) {
	// Explicit policy: once a shop has accepted an order, the customer
	// can no longer cancel it.
	assert.False(t, TransitionAllowed(StatusInProgress, StatusCancelled))
}

func TestSettableBy(t *testing.T) {
	assert.True(t, SettableBy(ActorShop, StatusInProgress))
	assert.True(t, SettableBy(ActorShop, StatusCompleted))
	assert.False(t, SettableBy(ActorShop, StatusCancelled))
	assert.False(t, SettableBy(ActorShop, StatusPending))

	assert.True(t, SettableBy(ActorCustomer, StatusCancelled))
	assert.False(t, SettableBy(ActorCustomer, StatusInProgress))
	assert.False(t, SettableBy(ActorCustomer, StatusCompleted))
	assert.False(t, SettableBy(ActorCustomer, StatusPending))

	assert.False(t, SettableBy(ActorKind("admin"), StatusCompleted))
}

func TestOrderTotal(t *testing.T) {
	items := []OrderItem{
		{UnitPrice: 100, Quantity: 2},
		{UnitPrice: 50, Quantity: 1},
	}
	assert.Equal(t, int64(250), OrderTotal(items))
	assert.Equal(t, int64(0), OrderTotal(nil))
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.5, RoundRating(4.5))
	assert.Equal(t, 4.3, RoundRating(13.0/3.0))
	assert.Equal(t, 4.7, RoundRating(14.0/3.0))
	assert.Equal(t, 0.0, RoundRating(0))
}

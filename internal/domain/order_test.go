package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_CanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to preparing skips confirm", StatusPending, StatusPreparing, true},
		{"confirmed to ready skips preparing", StatusConfirmed, StatusReady, true},
		{"preparing to ready", StatusPreparing, StatusReady, true},
		{"ready to delivered", StatusReady, StatusDelivered, true},
		{"out_for_delivery to delivered", StatusOutForDelivery, StatusDelivered, true},
		{"ready cannot be cancelled via transition", StatusReady, StatusCancelled, false},
		{"delivered is terminal", StatusDelivered, StatusPreparing, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"no backward move", StatusPreparing, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{Status: tt.from}
			assert.Equal(t, tt.allowed, order.CanTransition(tt.to))
		})
	}
}

func TestOrder_CanBeCancelled(t *testing.T) {
	cancellable := []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing}
	for _, s := range cancellable {
		order := &Order{Status: s}
		assert.True(t, order.CanBeCancelled(), "status %s", s)
	}

	notCancellable := []OrderStatus{StatusReady, StatusOutForDelivery, StatusDelivered, StatusCancelled}
	for _, s := range notCancellable {
		order := &Order{Status: s}
		assert.False(t, order.CanBeCancelled(), "status %s", s)
	}
}

func TestOrder_IsActive(t *testing.T) {
	active := &Order{Status: StatusPreparing}
	assert.True(t, active.IsActive())

	done := &Order{Status: StatusDelivered}
	assert.False(t, done.IsActive())

	cancelled := &Order{Status: StatusCancelled}
	assert.False(t, cancelled.IsActive())
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("preparing")
	assert.True(t, ok)
	assert.Equal(t, StatusPreparing, status)

	_, ok = ParseOrderStatus("shipped")
	assert.False(t, ok)
}

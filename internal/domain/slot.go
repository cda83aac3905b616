package domain

import "github.com/krtkm27/ZEats-OrderService/pkg/types"

// SlotDescriptor represents one bookable pickup slot with live occupancy.
// Derived on every request, never persisted.
type SlotDescriptor struct {
	Time              types.TimeString
	Available         bool
	RemainingCapacity int
	IsHighTraffic     bool
}

// IsFull returns true if the slot has no remaining capacity
func (s *SlotDescriptor) IsFull() bool {
	return s.RemainingCapacity <= 0
}

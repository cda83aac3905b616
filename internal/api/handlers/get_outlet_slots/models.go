package get_outlet_slots

import (
	generateSlots "github.com/krtkm27/ZEats-OrderService/internal/usecase/generate_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	OutletID int64  `json:"outletId"`
	Slots    []Slot `json:"slots"`
}

// Slot модель временного слота самовывоза
type Slot struct {
	Time          string `json:"time"`
	Available     bool   `json:"available"`
	Remaining     int    `json:"remaining"`
	IsHighTraffic bool   `json:"isHighTraffic"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			Time:          slot.Time.String(),
			Available:     slot.Available,
			Remaining:     slot.Remaining,
			IsHighTraffic: slot.IsHighTraffic,
		}
	}

	return &SlotsResponse{
		OutletID: resp.OutletID,
		Slots:    slots,
	}
}

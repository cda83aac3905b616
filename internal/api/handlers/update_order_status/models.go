package update_order_status

import (
	"time"

	updateOrderStatus "github.com/krtkm27/ZEats-OrderService/internal/usecase/update_order_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status        string  `json:"status"`
	EstimatedTime *string `json:"estimatedTime,omitempty"` // "25 mins"
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	OrderNumber   string  `json:"orderNumber"`
	Status        string  `json:"status"`
	PickupSlot    *string `json:"pickupSlot,omitempty"`
	PickupTime    *string `json:"pickupTime,omitempty"`
	EstimatedTime *string `json:"estimatedTime,omitempty"`
	CompletedAt   *string `json:"completedAt,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateOrderStatus.Response) *UpdateStatusResponse {
	var pickupSlot *string
	if resp.PickupSlot != nil {
		s := resp.PickupSlot.String()
		pickupSlot = &s
	}

	var pickupTime *string
	if resp.PickupTime != nil {
		t := resp.PickupTime.Format(time.RFC3339)
		pickupTime = &t
	}

	var completedAt *string
	if resp.CompletedAt != nil {
		t := resp.CompletedAt.Format(time.RFC3339)
		completedAt = &t
	}

	return &UpdateStatusResponse{
		OrderNumber:   resp.OrderNumber,
		Status:        resp.Status,
		PickupSlot:    pickupSlot,
		PickupTime:    pickupTime,
		EstimatedTime: resp.EstimatedTime,
		CompletedAt:   completedAt,
	}
}

package cancel_order

// CancelOrderRequest HTTP request model
type CancelOrderRequest struct {
	Reason *string `json:"reason,omitempty"`
}

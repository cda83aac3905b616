package cancel_order

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/krtkm27/ZEats-OrderService/internal/api/handlers"
	"github.com/krtkm27/ZEats-OrderService/internal/api/middleware"
	"github.com/krtkm27/ZEats-OrderService/internal/service/orders"
	"github.com/krtkm27/ZEats-OrderService/internal/service/orders/models"
)

const (
	msgMissingOrderNumber = "missing order number"
	msgMissingUserID      = "missing user ID"
	msgInvalidRequestBody = "invalid request body"
	msgOrderNotFound      = "order not found"
	msgForbidden          = "access denied"
	msgCannotCancel       = "order can no longer be cancelled"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderNumber}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderNumber := vars["orderNumber"]
	if orderNumber == "" {
		h.logger.Warn("PATCH /orders/{orderNumber}/cancel - Missing order number")
		handlers.RespondBadRequest(w, msgMissingOrderNumber)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /orders/{orderNumber}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело запроса опционально (только причина отмены)
	var req CancelOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /orders/{orderNumber}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), &models.CancelOrderRequest{
		UserID:      userID,
		OrderNumber: orderNumber,
		Reason:      req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{orderNumber}/cancel - Order not found: order_number=%s", orderNumber)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("PATCH /orders/{orderNumber}/cancel - Access denied: order_number=%s, user_id=%d",
				orderNumber, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, orders.ErrCannotCancel):
			h.logger.Warn("PATCH /orders/{orderNumber}/cancel - Cannot cancel: order_number=%s, error=%v",
				orderNumber, err)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /orders/{orderNumber}/cancel - Failed to cancel order: order_number=%s, error=%v",
				orderNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{orderNumber}/cancel - Order cancelled successfully: order_number=%s, user_id=%d",
		orderNumber, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package get_order

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/krtkm27/ZEats-OrderService/internal/api/handlers"
	"github.com/krtkm27/ZEats-OrderService/internal/api/middleware"
	"github.com/krtkm27/ZEats-OrderService/internal/service/orders"
)

const (
	msgMissingOrderNumber = "missing order number"
	msgMissingUserID      = "missing user ID"
	msgOrderNotFound      = "order not found"
	msgForbidden          = "access denied"
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

// Handle GET /api/v1/orders/{orderNumber}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderNumber := vars["orderNumber"]
	if orderNumber == "" {
		h.logger.Warn("GET /orders/{orderNumber} - Missing order number")
		handlers.RespondBadRequest(w, msgMissingOrderNumber)
		return
	}

	// Получаем данные пользователя из контекста (через middleware Auth)
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /orders/{orderNumber} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем заказ (сервис сам проверит права доступа)
	order, err := h.service.GetByOrderNumber(r.Context(), orderNumber, actor)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("GET /orders/{orderNumber} - Order not found: order_number=%s", orderNumber)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("GET /orders/{orderNumber} - Access denied: order_number=%s, user_id=%d",
				orderNumber, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /orders/{orderNumber} - Failed to get order: order_number=%s, error=%v",
				orderNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /orders/{orderNumber} - Order retrieved successfully: order_number=%s, user_id=%d",
		orderNumber, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, order)
}

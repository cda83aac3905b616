package update_order_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/krtkm27/ZEats-OrderService/internal/api/handlers"
	"github.com/krtkm27/ZEats-OrderService/internal/api/middleware"
	updateOrderStatus "github.com/krtkm27/ZEats-OrderService/internal/usecase/update_order_status"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingOrderNumber = "missing order number"
	msgMissingUserID      = "missing user ID"
	msgOrderNotFound      = "order not found"
	msgInvalidStatus      = "unknown order status"
	msgInvalidTransition  = "status transition is not allowed"
	msgForbidden          = "access denied"
)

type Handler struct {
	useCase UpdateOrderStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateOrderStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderNumber}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderNumber := vars["orderNumber"]
	if orderNumber == "" {
		h.logger.Warn("PATCH /orders/{orderNumber}/status - Missing order number")
		handlers.RespondBadRequest(w, msgMissingOrderNumber)
		return
	}

	// Получаем данные пользователя из контекста (через middleware Auth)
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /orders/{orderNumber}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{orderNumber}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &updateOrderStatus.Request{
		Actor:         actor,
		OrderNumber:   orderNumber,
		Status:        req.Status,
		EstimatedTime: req.EstimatedTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, updateOrderStatus.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{orderNumber}/status - Order not found: order_number=%s", orderNumber)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, updateOrderStatus.ErrInvalidStatus):
			h.logger.Warn("PATCH /orders/{orderNumber}/status - Invalid status: order_number=%s, status=%s",
				orderNumber, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, updateOrderStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /orders/{orderNumber}/status - Invalid transition: order_number=%s, status=%s",
				orderNumber, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, updateOrderStatus.ErrAccessDenied):
			h.logger.Warn("PATCH /orders/{orderNumber}/status - Access denied: order_number=%s, user_id=%d",
				orderNumber, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateOrderStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /orders/{orderNumber}/status - Invalid input: order_number=%s, error=%v", orderNumber, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /orders/{orderNumber}/status - Failed to update status: order_number=%s, status=%s, error=%v",
				orderNumber, req.Status, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /orders/{orderNumber}/status - Status updated: order_number=%s, status=%s, user_id=%d",
		orderNumber, result.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, response)
}

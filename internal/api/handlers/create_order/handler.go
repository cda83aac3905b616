package create_order

import (
	"errors"
	"net/http"

	"github.com/krtkm27/ZEats-OrderService/internal/api/handlers"
	"github.com/krtkm27/ZEats-OrderService/internal/api/middleware"
	createOrder "github.com/krtkm27/ZEats-OrderService/internal/usecase/create_order"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidPickupSlot    = "invalid pickup slot format, expected HH:MM"
	msgMissingUserID        = "missing user ID"
	msgMenuItemNotAvailable = "menu item not found or unavailable"
	msgOutletNotFound       = "outlet not found"
	msgOutletUnknown        = "could not determine outlet for the order"
	msgUserNotFound         = "user not found"
	msgSlotNotAvailable     = "selected pickup slot is full"
	msgInvalidInput         = "invalid order data"
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом слота)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /orders - Invalid pickup slot: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidPickupSlot)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrSlotNotAvailable):
			h.logger.Warn("POST /orders - Slot not available: user_id=%d, outlet_id=%d", userID, req.OutletID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createOrder.ErrMenuItemNotAvailable):
			h.logger.Warn("POST /orders - Menu item not available: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgMenuItemNotAvailable)

		case errors.Is(err, createOrder.ErrOutletNotFound):
			h.logger.Warn("POST /orders - Outlet not found: user_id=%d, outlet_id=%d", userID, req.OutletID)
			handlers.RespondNotFound(w, msgOutletNotFound)

		case errors.Is(err, createOrder.ErrOutletUnknown):
			h.logger.Warn("POST /orders - Outlet could not be determined: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgOutletUnknown)

		case errors.Is(err, createOrder.ErrUserNotFound):
			h.logger.Warn("POST /orders - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createOrder.ErrInvalidInput):
			h.logger.Warn("POST /orders - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /orders - Failed to create order: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /orders - Order created successfully: order_number=%s, user_id=%d, outlet_id=%d, total=%.2f",
		result.OrderNumber, userID, result.OutletID, result.Total)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

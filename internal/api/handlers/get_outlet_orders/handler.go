package get_outlet_orders

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/krtkm27/ZEats-OrderService/internal/api/handlers"
	"github.com/krtkm27/ZEats-OrderService/internal/api/middleware"
	"github.com/krtkm27/ZEats-OrderService/internal/service/orders"
	"github.com/krtkm27/ZEats-OrderService/internal/service/orders/models"
)

const (
	msgInvalidOutletID = "invalid outlet ID"
	msgMissingUserID   = "missing user ID"
	msgInvalidStatus   = "invalid status filter"
	msgInvalidSince    = "invalid since parameter, expected RFC3339 timestamp"
	msgForbidden       = "access denied"
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

// Handle GET /api/v1/outlets/{outletId}/orders
// Query params: status, active, since, limit, offset (все опциональные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем outletId из URL
	vars := mux.Vars(r)
	outletIDStr := vars["outletId"]

	outletID, err := strconv.ParseInt(outletIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /outlets/{id}/orders - Invalid outlet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOutletID)
		return
	}

	// Получаем данные пользователя из контекста (через middleware Auth)
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /outlets/{id}/orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	var statusPtr *string
	if status := query.Get("status"); status != "" {
		statusPtr = &status
	}

	var createdSince *time.Time
	if sinceStr := query.Get("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			h.logger.Warn("GET /outlets/{id}/orders - Invalid since: outlet_id=%d, error=%v", outletID, err)
			handlers.RespondBadRequest(w, msgInvalidSince)
			return
		}
		createdSince = &since
	}

	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	serviceReq := &models.GetOutletOrdersRequest{
		OutletID:     outletID,
		Status:       statusPtr,
		CreatedSince: createdSince,
		OnlyActive:   query.Get("active") == "true",
		Limit:        limit,
		Offset:       offset,
	}

	result, err := h.service.GetOutletOrders(r.Context(), serviceReq, actor)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("GET /outlets/{id}/orders - Access denied: outlet_id=%d, user_id=%d",
				outletID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("GET /outlets/{id}/orders - Invalid status filter: outlet_id=%d", outletID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /outlets/{id}/orders - Failed to get orders: outlet_id=%d, error=%v",
				outletID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /outlets/{id}/orders - Orders retrieved successfully: outlet_id=%d, count=%d",
		outletID, len(result.Orders))
	handlers.RespondJSON(w, http.StatusOK, result)
}

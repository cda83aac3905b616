package update_outlet_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/krtkm27/ZEats-OrderService/internal/api/handlers"
	"github.com/krtkm27/ZEats-OrderService/internal/api/middleware"
	"github.com/krtkm27/ZEats-OrderService/internal/service/outletconfig"
	"github.com/krtkm27/ZEats-OrderService/internal/service/outletconfig/models"
)

const (
	msgInvalidOutletID    = "invalid outlet ID"
	msgMissingUserID      = "missing user ID"
	msgInvalidRequestBody = "invalid request body"
	msgOutletNotFound     = "outlet not found"
	msgInvalidConfig      = "invalid outlet configuration"
	msgForbidden          = "access denied"
)

type Handler struct {
	service OutletConfigService
	logger  Logger
}

func NewHandler(service OutletConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/outlets/{outletId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем outletId из URL
	vars := mux.Vars(r)
	outletIDStr := vars["outletId"]

	outletID, err := strconv.ParseInt(outletIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /outlets/{id}/config - Invalid outlet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOutletID)
		return
	}

	// Получаем данные пользователя из контекста (через middleware Auth)
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /outlets/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /outlets/{id}/config - Invalid request body: outlet_id=%d, error=%v", outletID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.OutletID = outletID

	config, err := h.service.Update(r.Context(), &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, outletconfig.ErrOutletNotFound):
			h.logger.Warn("PUT /outlets/{id}/config - Outlet not found: outlet_id=%d", outletID)
			handlers.RespondNotFound(w, msgOutletNotFound)

		case errors.Is(err, outletconfig.ErrAccessDenied):
			h.logger.Warn("PUT /outlets/{id}/config - Access denied: outlet_id=%d, user_id=%d",
				outletID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, outletconfig.ErrInvalidInput):
			h.logger.Warn("PUT /outlets/{id}/config - Invalid config: outlet_id=%d, error=%v", outletID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /outlets/{id}/config - Failed to update config: outlet_id=%d, error=%v",
				outletID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /outlets/{id}/config - Config updated successfully: outlet_id=%d, user_id=%d",
		outletID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, config)
}

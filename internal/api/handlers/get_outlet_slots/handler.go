package get_outlet_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/krtkm27/ZEats-OrderService/internal/api/handlers"
	generateSlots "github.com/krtkm27/ZEats-OrderService/internal/usecase/generate_slots"
)

const (
	msgInvalidOutletID = "invalid outlet ID"
	msgOutletNotFound  = "outlet not found"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/outlets/{outletId}/slots
// Query params: includePast (optional, "true" для операторской сетки)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем outletId из URL
	vars := mux.Vars(r)
	outletIDStr := vars["outletId"]

	outletID, err := strconv.ParseInt(outletIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /outlets/{id}/slots - Invalid outlet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOutletID)
		return
	}

	includePast := r.URL.Query().Get("includePast") == "true"

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &generateSlots.Request{
		OutletID:    outletID,
		IncludePast: includePast,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrOutletNotFound):
			h.logger.Warn("GET /outlets/{id}/slots - Outlet not found: outlet_id=%d", outletID)
			handlers.RespondNotFound(w, msgOutletNotFound)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("GET /outlets/{id}/slots - Invalid input: outlet_id=%d, error=%v", outletID, err)
			handlers.RespondBadRequest(w, msgInvalidOutletID)

		default:
			h.logger.Error("GET /outlets/{id}/slots - Failed to generate slots: outlet_id=%d, error=%v", outletID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /outlets/{id}/slots - Slots generated: outlet_id=%d, include_past=%t, slots_count=%d",
		outletID, includePast, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}

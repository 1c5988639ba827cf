package get_staff_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/evelone226/salon-appointment-service/internal/api/handlers"
	"github.com/evelone226/salon-appointment-service/internal/api/middleware"
	"github.com/evelone226/salon-appointment-service/internal/service/appointments"
	"github.com/evelone226/salon-appointment-service/internal/service/appointments/models"
)

const (
	msgInvalidStaffID = "некорректный ID мастера"
	msgInvalidStatus  = "некорректный статус"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/appointments?status={status}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("GET /staff/{id}/appointments - missing user in context")
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	// Извлекаем staffId из URL
	vars := mux.Vars(r)
	staffIDStr := vars["staffId"]

	staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/appointments - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	// Опциональный фильтр по статусу
	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	// Получаем расписание мастера
	resp, err := h.service.ListByStaff(r.Context(), &models.ListByStaffRequest{
		StaffID:     staffID,
		RequesterID: requesterID,
		Status:      status,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/appointments - Invalid status filter: staff_id=%d", staffID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /staff/{id}/appointments - Access denied: staff_id=%d, user_id=%d",
				staffID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /staff/{id}/appointments - Failed to list appointments: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/appointments - Fetched %d appointment(s) for staff_id=%d",
		len(resp.Appointments), staffID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

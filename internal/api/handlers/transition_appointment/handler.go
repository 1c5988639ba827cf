package transition_appointment

import (
	"context"
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
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgInvalidTransition    = "недопустимый переход статуса"
)

type transitionFunc func(ctx context.Context, req *models.TransitionRequest) (*models.AppointmentResponse, error)

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

// HandleComplete POST /api/v1/appointments/{appointmentId}/complete
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.Complete, "POST /appointments/{id}/complete")
}

// HandleNoShow POST /api/v1/appointments/{appointmentId}/no-show
func (h *Handler) HandleNoShow(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.MarkNoShow, "POST /appointments/{id}/no-show")
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, transition transitionFunc, route string) {
	requesterID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("%s - missing user in context", route)
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid appointment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Выполняем переход
	resp, err := transition(r.Context(), &models.TransitionRequest{
		AppointmentID: appointmentID,
		RequesterID:   requesterID,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("%s - Appointment not found: appointment_id=%d", route, appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: appointment_id=%d, user_id=%d", route, appointmentID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: appointment_id=%d", route, appointmentID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("%s - Failed to transition: appointment_id=%d, error=%v", route, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Appointment moved to status %s: appointment_id=%d", route, resp.Status, appointmentID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

package cancel_appointment

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/evelone226/salon-appointment-service/internal/api/handlers"
	"github.com/evelone226/salon-appointment-service/internal/api/middleware"
	usecase "github.com/evelone226/salon-appointment-service/internal/usecase/cancel_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgAlreadyCancelled     = "запись уже отменена"
	msgAlreadyFinished      = "запись уже завершена"
	msgInPast               = "запись уже началась"
	msgWindowElapsed        = "срок бесплатной отмены истек"
)

type Handler struct {
	usecase CancelAppointmentUseCase
	logger  Logger
}

func NewHandler(usecase CancelAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/cancel - missing user in context")
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Декодируем body; пустое тело допустимо
	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /appointments/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Отменяем запись
	resp, err := h.usecase.Execute(r.Context(), &usecase.Request{
		AppointmentID: appointmentID,
		RequesterID:   requesterID,
		Reason:        req.Reason,
		NotifyClient:  req.NotifyClient,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/cancel - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, usecase.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/cancel - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, usecase.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/cancel - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, usecase.ErrAlreadyCancelled):
			h.logger.Warn("POST /appointments/{id}/cancel - Already cancelled: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, usecase.ErrAlreadyFinished):
			h.logger.Warn("POST /appointments/{id}/cancel - Already finished: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgAlreadyFinished)

		case errors.Is(err, usecase.ErrAppointmentInPast):
			h.logger.Warn("POST /appointments/{id}/cancel - Already started: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgInPast)

		case errors.Is(err, usecase.ErrCancellationWindowElapsed):
			h.logger.Warn("POST /appointments/{id}/cancel - Notice period elapsed: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgWindowElapsed)

		default:
			h.logger.Error("POST /appointments/{id}/cancel - Failed to cancel: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/cancel - Appointment cancelled successfully: appointment_id=%d, user_id=%d",
		appointmentID, requesterID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}

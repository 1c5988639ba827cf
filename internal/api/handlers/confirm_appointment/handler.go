package confirm_appointment

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/evelone226/salon-appointment-service/internal/api/handlers"
	usecase "github.com/evelone226/salon-appointment-service/internal/usecase/confirm_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgNotPending           = "запись нельзя подтвердить в текущем статусе"
)

type Handler struct {
	usecase ConfirmAppointmentUseCase
	logger  Logger
}

func NewHandler(usecase ConfirmAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/confirm - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Декодируем body; пустое тело допустимо
	var req ConfirmAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /appointments/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Подтверждаем запись
	resp, err := h.usecase.Execute(r.Context(), &usecase.Request{
		AppointmentID: appointmentID,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/confirm - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, usecase.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/confirm - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, usecase.ErrNotPending):
			h.logger.Warn("POST /appointments/{id}/confirm - Not pending: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgNotPending)

		default:
			h.logger.Error("POST /appointments/{id}/confirm - Failed to confirm: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/confirm - Appointment confirmed successfully: appointment_id=%d",
		appointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}

package create_appointment

import (
	"errors"
	"net/http"

	"github.com/evelone226/salon-appointment-service/internal/api/handlers"
	"github.com/evelone226/salon-appointment-service/internal/api/middleware"
	usecase "github.com/evelone226/salon-appointment-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgClientNotFound     = "клиент не найден"
	msgStaffNotFound      = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotTaken          = "выбранное время уже занято"
	msgClosedOnDate       = "салон не работает в выбранную дату"
	msgOutsideHours       = "выбранное время вне часов работы салона"
)

type Handler struct {
	usecase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(usecase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - missing user in context")
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	// Декодируем body
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем запись
	resp, err := h.usecase.Execute(r.Context(), req.ToUseCaseRequest(), creatorID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput),
			errors.Is(err, usecase.ErrDateInPast),
			errors.Is(err, usecase.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, usecase.ErrClientNotFound):
			h.logger.Warn("POST /appointments - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, usecase.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff_id=%v", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, usecase.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: %v", err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, usecase.ErrClosedOnDate):
			h.logger.Warn("POST /appointments - Salon closed on requested date")
			handlers.RespondNotFound(w, msgClosedOnDate)

		case errors.Is(err, usecase.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: staff_id=%v, start=%s",
				req.StaffID, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, usecase.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Outside business hours: start=%s", req.StartTime)
			handlers.RespondConflict(w, msgOutsideHours)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, creator_id=%d",
		resp.ID, creatorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}

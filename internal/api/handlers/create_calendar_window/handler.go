package create_calendar_window

import (
	"errors"
	"net/http"

	"github.com/evelone226/salon-appointment-service/internal/api/handlers"
	"github.com/evelone226/salon-appointment-service/internal/api/middleware"
	"github.com/evelone226/salon-appointment-service/internal/service/calendar"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgWindowOverlap      = "окно пересекается с существующим окном"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/calendar/windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("POST /calendar/windows - missing user in context")
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	// Декодируем body
	var req CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendar/windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем окно
	resp, err := h.service.CreateWindow(r.Context(), req.ToServiceRequest(requesterID))
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("POST /calendar/windows - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, calendar.ErrAccessDenied):
			h.logger.Warn("POST /calendar/windows - Access denied: user_id=%d", requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, calendar.ErrWindowOverlap):
			h.logger.Warn("POST /calendar/windows - Window overlap: %v", err)
			handlers.RespondConflict(w, msgWindowOverlap)

		default:
			h.logger.Error("POST /calendar/windows - Failed to create window: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendar/windows - Window created successfully: window_id=%d", resp.ID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

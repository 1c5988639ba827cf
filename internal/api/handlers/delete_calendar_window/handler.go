package delete_calendar_window

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/evelone226/salon-appointment-service/internal/api/handlers"
	"github.com/evelone226/salon-appointment-service/internal/api/middleware"
	"github.com/evelone226/salon-appointment-service/internal/service/calendar"
)

const (
	msgInvalidWindowID = "некорректный ID окна"
	msgNotFound        = "окно не найдено"
	msgForbidden       = "доступ запрещен"
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

// Handle DELETE /api/v1/calendar/windows/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /calendar/windows/{id} - missing user in context")
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	// Извлекаем windowId из URL
	vars := mux.Vars(r)
	windowIDStr := vars["windowId"]

	windowID, err := strconv.ParseInt(windowIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /calendar/windows/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	// Удаляем окно
	if err := h.service.DeleteWindow(r.Context(), windowID, requesterID); err != nil {
		switch {
		case errors.Is(err, calendar.ErrWindowNotFound):
			h.logger.Warn("DELETE /calendar/windows/{id} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendar.ErrAccessDenied):
			h.logger.Warn("DELETE /calendar/windows/{id} - Access denied: window_id=%d, user_id=%d",
				windowID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /calendar/windows/{id} - Failed to delete window: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /calendar/windows/{id} - Window deleted successfully: window_id=%d", windowID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

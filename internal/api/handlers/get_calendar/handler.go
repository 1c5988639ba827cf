package get_calendar

import (
	"net/http"

	"github.com/evelone226/salon-appointment-service/internal/api/handlers"
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

// Handle GET /api/v1/calendar/windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListWindows(r.Context())
	if err != nil {
		h.logger.Error("GET /calendar/windows - Failed to list windows: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendar/windows - Fetched %d window(s)", len(resp.Windows))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

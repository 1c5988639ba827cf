package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/evelone226/salon-appointment-service/internal/api/handlers"
	"github.com/evelone226/salon-appointment-service/internal/domain"
	usecase "github.com/evelone226/salon-appointment-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate       = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgInvalidStaffID    = "некорректный ID мастера"
	msgInvalidServiceIDs = "некорректный список услуг"
	msgInvalidDuration   = "некорректная длительность"
	msgServiceNotFound   = "услуга не найдена"
)

type Handler struct {
	usecase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(usecase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date={date}&staffId={id}&serviceIds={id,id}&durationMinutes={n}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Обязательный параметр date
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %q", query.Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Опциональный staffId
	var staffID *int64
	if raw := query.Get("staffId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid staff ID: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &id
	}

	// Опциональный список услуг через запятую
	var serviceIDs []int64
	if raw := query.Get("serviceIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				h.logger.Warn("GET /slots - Invalid service IDs: %q", raw)
				handlers.RespondBadRequest(w, msgInvalidServiceIDs)
				return
			}
			serviceIDs = append(serviceIDs, id)
		}
	}

	// Опциональная явная длительность
	var durationMinutes *int
	if raw := query.Get("durationMinutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid duration: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		durationMinutes = &minutes
	}

	// Подбираем слоты
	resp, err := h.usecase.Execute(r.Context(), &usecase.Request{
		Date:            date,
		StaffID:         staffID,
		ServiceIDs:      serviceIDs,
		DurationMinutes: durationMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput),
			errors.Is(err, usecase.ErrDateInPast),
			errors.Is(err, usecase.ErrDateTooFarInFuture):
			h.logger.Warn("GET /slots - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, usecase.ErrServiceNotFound):
			h.logger.Warn("GET /slots - Service not found: %v", err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /slots - Failed to get available slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Found %d slot(s) on %s", len(resp.Slots), resp.Date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}

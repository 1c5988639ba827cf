package models

import (
	"errors"
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	"github.com/evelone226/salon-appointment-service/pkg/types"
)

var (
	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidTime возвращается при некорректном времени окна
	ErrInvalidTime = errors.New("invalid window time")
)

// Request модели

// CreateWindowRequest запрос на создание окна календаря
type CreateWindowRequest struct {
	RequesterID int64  `json:"requesterId"`
	Weekday     int    `json:"weekday"`   // 0 = Sunday ... 6 = Saturday
	StartTime   string `json:"startTime"` // "HH:MM"
	EndTime     string `json:"endTime"`   // "HH:MM", допускается "24:00"
	HolidayID   *int64 `json:"holidayId,omitempty"`
}

// ToDomainWindow конвертирует request в domain модель с валидацией
func (r *CreateWindowRequest) ToDomainWindow() (*domain.CalendarWindow, error) {
	if r.Weekday < 0 || r.Weekday > 6 {
		return nil, ErrInvalidWeekday
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if !start.IsBefore(end) {
		return nil, ErrInvalidTime
	}

	return &domain.CalendarWindow{
		Weekday:   time.Weekday(r.Weekday),
		StartTime: start,
		EndTime:   end,
		HolidayID: r.HolidayID,
	}, nil
}

// Response модели

// WindowResponse ответ с данными окна календаря
type WindowResponse struct {
	ID        int64  `json:"id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	HolidayID *int64 `json:"holidayId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WindowListResponse ответ со списком окон календаря
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.CalendarWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:        w.ID,
		Weekday:   int(w.Weekday),
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
		HolidayID: w.HolidayID,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.CalendarWindow) *WindowListResponse {
	if windows == nil {
		return &WindowListResponse{
			Windows: []WindowResponse{},
		}
	}

	resp := &WindowListResponse{
		Windows: make([]WindowResponse, len(windows)),
	}

	for i, window := range windows {
		if windowResp := FromDomainWindow(window); windowResp != nil {
			resp.Windows[i] = *windowResp
		}
	}

	return resp
}

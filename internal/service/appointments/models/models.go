package models

import (
	"errors"
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном имени статуса
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListByClientRequest запрос на получение записей клиента
type ListByClientRequest struct {
	ClientID    int64   `json:"clientId"`
	RequesterID int64   `json:"requesterId"`
	Status      *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// ListByStaffRequest запрос на получение записей мастера
type ListByStaffRequest struct {
	StaffID     int64   `json:"staffId"`
	RequesterID int64   `json:"requesterId"`
	Status      *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// TransitionRequest запрос на перевод записи в терминальный статус
type TransitionRequest struct {
	AppointmentID int64 `json:"appointmentId"`
	RequesterID   int64 `json:"requesterId"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID               int64   `json:"id"`
	CreatorID        int64   `json:"creatorId"`
	ClientID         int64   `json:"clientId"`
	StaffID          *int64  `json:"staffId,omitempty"`
	CalendarWindowID int64   `json:"calendarWindowId"`
	Status           string  `json:"status"`
	ServiceIDs       []int64 `json:"serviceIds"`

	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledBy        *int64  `json:"cancelledBy,omitempty"`
	ConfirmedAt        *string `json:"confirmedAt,omitempty"` // ISO 8601 format
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		CreatorID:          a.CreatorID,
		ClientID:           a.ClientID,
		StaffID:            a.StaffID,
		CalendarWindowID:   a.CalendarWindowID,
		Status:             string(a.Status),
		ServiceIDs:         a.ServiceIDs,
		StartTime:          a.StartTime,
		EndTime:            a.EndTime(),
		DurationMinutes:    a.DurationMinutes,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledBy:        a.CancelledBy,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.ConfirmedAt != nil {
		confirmedStr := a.ConfirmedAt.Format(time.RFC3339)
		resp.ConfirmedAt = &confirmedStr
	}
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainStatusName конвертирует строку в domain.StatusName с валидацией
func ToDomainStatusName(status string) (domain.StatusName, error) {
	name, err := domain.ParseStatusName(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return name, nil
}

package confirm_appointment

import (
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
)

// Request модель запроса на подтверждение записи
type Request struct {
	AppointmentID int64   // идентификатор записи
	Notes         *string // обновленные заметки (опционально)
}

// Response модель ответа с подтвержденной записью
type Response struct {
	ID              int64
	ClientID        int64
	StaffID         *int64
	Status          string
	ServiceIDs      []int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Notes           *string
	ConfirmedAt     *time.Time
	UpdatedAt       time.Time
}

// fromDomain конвертирует domain модель в ответ usecase
func fromDomain(appt *domain.Appointment) *Response {
	return &Response{
		ID:              appt.ID,
		ClientID:        appt.ClientID,
		StaffID:         appt.StaffID,
		Status:          string(appt.Status),
		ServiceIDs:      appt.ServiceIDs,
		StartTime:       appt.StartTime,
		EndTime:         appt.EndTime(),
		DurationMinutes: appt.DurationMinutes,
		Notes:           appt.Notes,
		ConfirmedAt:     appt.ConfirmedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}

package create_appointment

import (
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID        int64     // кто получает услугу
	StaffID         *int64    // закрепленный мастер (опционально)
	StartTime       time.Time // время начала записи
	DurationMinutes *int      // явная длительность; nil = вычислить из услуг
	ServiceIDs      []int64   // выбранные услуги (минимум одна, повторы допустимы)
	Notes           *string   // дополнительные заметки (опционально)
	RequestID       *string   // клиентский ключ идемпотентности, UUID (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID               int64
	CreatorID        int64
	ClientID         int64
	StaffID          *int64
	CalendarWindowID int64
	Status           string
	ServiceIDs       []int64
	StartTime        time.Time
	EndTime          time.Time
	DurationMinutes  int
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// fromDomain конвертирует domain модель в ответ usecase
func fromDomain(appt *domain.Appointment) *Response {
	return &Response{
		ID:               appt.ID,
		CreatorID:        appt.CreatorID,
		ClientID:         appt.ClientID,
		StaffID:          appt.StaffID,
		CalendarWindowID: appt.CalendarWindowID,
		Status:           string(appt.Status),
		ServiceIDs:       appt.ServiceIDs,
		StartTime:        appt.StartTime,
		EndTime:          appt.EndTime(),
		DurationMinutes:  appt.DurationMinutes,
		Notes:            appt.Notes,
		CreatedAt:        appt.CreatedAt,
		UpdatedAt:        appt.UpdatedAt,
	}
}

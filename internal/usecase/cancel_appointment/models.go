package cancel_appointment

import (
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
)

// Request модель запроса на отмену записи
type Request struct {
	AppointmentID int64   // идентификатор записи
	RequesterID   int64   // кто запрашивает отмену
	Reason        *string // причина отмены (опционально)
	NotifyClient  bool    // уведомить ли клиента об отмене
}

// Response модель ответа с отмененной записью
type Response struct {
	ID                 int64
	ClientID           int64
	StaffID            *int64
	Status             string
	StartTime          time.Time
	CancellationReason *string
	CancelledBy        *int64
	CancelledAt        *time.Time
	// NotifyClient показывает, нужно ли отправить клиенту уведомление:
	// запрошено отправителем и отменял не сам клиент
	NotifyClient bool
}

// fromDomain конвертирует domain модель в ответ usecase
func fromDomain(appt *domain.Appointment, notifyClient bool) *Response {
	return &Response{
		ID:                 appt.ID,
		ClientID:           appt.ClientID,
		StaffID:            appt.StaffID,
		Status:             string(appt.Status),
		StartTime:          appt.StartTime,
		CancellationReason: appt.CancellationReason,
		CancelledBy:        appt.CancelledBy,
		CancelledAt:        appt.CancelledAt,
		NotifyClient:       notifyClient,
	}
}

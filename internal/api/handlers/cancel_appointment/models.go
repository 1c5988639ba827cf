package cancel_appointment

import (
	"time"

	usecase "github.com/evelone226/salon-appointment-service/internal/usecase/cancel_appointment"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason       *string `json:"reason,omitempty"`
	NotifyClient bool    `json:"notifyClient,omitempty"`
}

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	ID                 int64      `json:"id"`
	ClientID           int64      `json:"clientId"`
	StaffID            *int64     `json:"staffId,omitempty"`
	Status             string     `json:"status"`
	StartTime          time.Time  `json:"startTime"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledBy        *int64     `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	NotifyClient       bool       `json:"notifyClient"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *usecase.Response) *CancelAppointmentResponse {
	return &CancelAppointmentResponse{
		ID:                 resp.ID,
		ClientID:           resp.ClientID,
		StaffID:            resp.StaffID,
		Status:             resp.Status,
		StartTime:          resp.StartTime,
		CancellationReason: resp.CancellationReason,
		CancelledBy:        resp.CancelledBy,
		CancelledAt:        resp.CancelledAt,
		NotifyClient:       resp.NotifyClient,
	}
}

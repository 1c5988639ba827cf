package confirm_appointment

import (
	"time"

	usecase "github.com/evelone226/salon-appointment-service/internal/usecase/confirm_appointment"
)

// ConfirmAppointmentRequest HTTP request model
type ConfirmAppointmentRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// ConfirmAppointmentResponse HTTP response model
type ConfirmAppointmentResponse struct {
	ID              int64      `json:"id"`
	ClientID        int64      `json:"clientId"`
	StaffID         *int64     `json:"staffId,omitempty"`
	Status          string     `json:"status"`
	ServiceIDs      []int64    `json:"serviceIds"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Notes           *string    `json:"notes,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmedAt,omitempty"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *usecase.Response) *ConfirmAppointmentResponse {
	return &ConfirmAppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		StaffID:         resp.StaffID,
		Status:          resp.Status,
		ServiceIDs:      resp.ServiceIDs,
		StartTime:       resp.StartTime,
		EndTime:         resp.EndTime,
		DurationMinutes: resp.DurationMinutes,
		Notes:           resp.Notes,
		ConfirmedAt:     resp.ConfirmedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}

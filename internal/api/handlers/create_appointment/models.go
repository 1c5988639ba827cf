package create_appointment

import (
	"time"

	usecase "github.com/evelone226/salon-appointment-service/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID        int64     `json:"clientId"`
	StaffID         *int64    `json:"staffId,omitempty"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	ServiceIDs      []int64   `json:"serviceIds"`
	Notes           *string   `json:"notes,omitempty"`
	RequestID       *string   `json:"requestId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CreateAppointmentRequest) ToUseCaseRequest() *usecase.Request {
	return &usecase.Request{
		ClientID:        r.ClientID,
		StaffID:         r.StaffID,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		ServiceIDs:      r.ServiceIDs,
		Notes:           r.Notes,
		RequestID:       r.RequestID,
	}
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	ID               int64     `json:"id"`
	CreatorID        int64     `json:"creatorId"`
	ClientID         int64     `json:"clientId"`
	StaffID          *int64    `json:"staffId,omitempty"`
	CalendarWindowID int64     `json:"calendarWindowId"`
	Status           string    `json:"status"`
	ServiceIDs       []int64   `json:"serviceIds"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	DurationMinutes  int       `json:"durationMinutes"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *usecase.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		ID:               resp.ID,
		CreatorID:        resp.CreatorID,
		ClientID:         resp.ClientID,
		StaffID:          resp.StaffID,
		CalendarWindowID: resp.CalendarWindowID,
		Status:           resp.Status,
		ServiceIDs:       resp.ServiceIDs,
		StartTime:        resp.StartTime,
		EndTime:          resp.EndTime,
		DurationMinutes:  resp.DurationMinutes,
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt,
		UpdatedAt:        resp.UpdatedAt,
	}
}

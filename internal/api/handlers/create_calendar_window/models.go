package create_calendar_window

import (
	"github.com/evelone226/salon-appointment-service/internal/service/calendar/models"
)

// CreateWindowRequest HTTP request model
type CreateWindowRequest struct {
	Weekday   int    `json:"weekday"`   // 0 = Sunday ... 6 = Saturday
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
	HolidayID *int64 `json:"holidayId,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateWindowRequest) ToServiceRequest(requesterID int64) *models.CreateWindowRequest {
	return &models.CreateWindowRequest{
		RequesterID: requesterID,
		Weekday:     r.Weekday,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		HolidayID:   r.HolidayID,
	}
}

package get_available_slots

import (
	"github.com/evelone226/salon-appointment-service/internal/domain"
	usecase "github.com/evelone226/salon-appointment-service/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "HH:MM"
	DurationMinutes int    `json:"durationMinutes"`
}

// GetAvailableSlotsResponse HTTP response model
type GetAvailableSlotsResponse struct {
	Date            string         `json:"date"` // "2006-01-02"
	StaffID         *int64         `json:"staffId,omitempty"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *usecase.Response) *GetAvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &GetAvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		StaffID:         resp.StaffID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

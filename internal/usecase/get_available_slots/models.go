package get_available_slots

import (
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	"github.com/evelone226/salon-appointment-service/pkg/types"
)

// Request модель запроса свободных слотов
type Request struct {
	Date            time.Time // дата, на которую ищутся слоты
	StaffID         *int64    // nil = слоты без закрепленного мастера
	ServiceIDs      []int64   // выбранные услуги (определяют длительность)
	DurationMinutes *int      // явная длительность; nil = вычислить из услуг
}

// Slot свободный временной слот
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// Response модель ответа со свободными слотами
type Response struct {
	Date            time.Time
	StaffID         *int64
	DurationMinutes int
	Slots           []Slot
}

// fromDomainSlots конвертирует слоты domain в ответ usecase
func fromDomainSlots(date time.Time, staffID *int64, duration int, slots []domain.AvailableSlot) *Response {
	result := make([]Slot, len(slots))
	for i, slot := range slots {
		result[i] = Slot{
			StartTime:       slot.StartTime,
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &Response{
		Date:            date,
		StaffID:         staffID,
		DurationMinutes: duration,
		Slots:           result,
	}
}

package get_available_slots

import (
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	"github.com/evelone226/salon-appointment-service/pkg/types"
)

// generateWindowSlots генерирует слоты-кандидаты внутри одного окна календаря.
// Кандидаты идут от начала окна с фиксированным шагом stepMinutes; кандидат
// попадает в результат, только если целиком помещается в окно.
func generateWindowSlots(window *domain.CalendarWindow, durationMinutes, stepMinutes int) ([]types.TimeString, error) {
	windowStart, err := window.StartTime.Minutes()
	if err != nil {
		return nil, err
	}
	windowEnd, err := window.EndTime.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0)

	for start := windowStart; start+durationMinutes <= windowEnd; start += stepMinutes {
		slot, err := types.FromMinutes(start)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// filterSlots отбрасывает кандидатов, которые начинаются в прошлом (для
// сегодняшней даты) или пересекаются с существующими записями.
//
// Без указанного мастера проверка пересечений пропускается: слоты без мастера
// не конкурируют за его время (см. create_appointment).
func filterSlots(
	candidates []types.TimeString,
	durationMinutes int,
	date time.Time,
	now time.Time,
	staffID *int64,
	appointments []*domain.Appointment,
) []domain.AvailableSlot {
	available := make([]domain.AvailableSlot, 0, len(candidates))

	for _, candidate := range candidates {
		slotStart := atClockTime(date, candidate)
		slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)

		if !slotStart.After(now) {
			continue
		}

		if staffID != nil && hasOverlap(slotStart, slotEnd, appointments) {
			continue
		}

		available = append(available, domain.AvailableSlot{
			StartTime:       candidate,
			DurationMinutes: durationMinutes,
			StaffID:         staffID,
		})
	}

	return available
}

// hasOverlap проверяет пересечение кандидата [start, end) с активными записями.
// Границы впритык пересечением не считаются: запись до 12:00 не блокирует
// слот, начинающийся ровно в 12:00.
func hasOverlap(start, end time.Time, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if appt.OverlapsInterval(start, end) {
			return true
		}
	}
	return false
}

// atClockTime собирает момент времени из даты и времени суток "HH:MM"
func atClockTime(date time.Time, clock types.TimeString) time.Time {
	minutes, err := clock.Minutes()
	if err != nil {
		return time.Time{}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.Before(nowOnly)
}

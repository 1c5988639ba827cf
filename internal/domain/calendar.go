package domain

import (
	"time"

	"github.com/evelone226/salon-appointment-service/pkg/types"
)

// CalendarWindow операционное окно салона: день недели и интервал работы
// [StartTime, EndTime). На день недели может приходиться несколько окон
// (разрывной график). Окна с HolidayID перекрывают обычные окна дня недели
// на дату праздника.
type CalendarWindow struct {
	ID        int64
	Weekday   time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	HolidayID *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

/// Overlaps проверяет пересечение двух окон как полуоткрытых интервалов:
// a.start < b.end && b.start < a.end. Сравнение имеет смысл только для окон
// одного дня недели или одного праздника.
func (w *CalendarWindow) Overlaps(other *CalendarWindow) bool {
	return w.StartTime.IsBefore(other.EndTime) && other.StartTime.IsBefore(w.EndTime)
}

// Covers проверяет, что слот [start, end) целиком лежит внутри окна
func (w *CalendarWindow) Covers(start, end types.TimeString) bool {
	return !start.IsBefore(w.StartTime) && !w.EndTime.IsBefore(end)
}

// Holiday праздничная дата с особым графиком работы
type Holiday struct {
	ID        int64
	Date      time.Time
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FindCoveringWindow возвращает первое окно, целиком вмещающее слот [start, end),
// или nil, если такого окна нет
func FindCoveringWindow(windows []*CalendarWindow, start, end types.TimeString) *CalendarWindow {
	for _, w := range windows {
		if w.Covers(start, end) {
			return w
		}
	}
	return nil
}

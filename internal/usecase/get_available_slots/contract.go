package get_available_slots

import (
	"context"
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	"github.com/evelone226/salon-appointment-service/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListForDate(ctx context.Context, date time.Time, staffID *int64) ([]*domain.Appointment, error)
}

// CalendarRepository интерфейс календаря работы салона
type CalendarRepository interface {
	FindHolidayByDate(ctx context.Context, date time.Time) (*domain.Holiday, error)
	GetByWeekday(ctx context.Context, weekday time.Weekday) ([]*domain.CalendarWindow, error)
	GetByHoliday(ctx context.Context, holidayID int64) ([]*domain.CalendarWindow, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

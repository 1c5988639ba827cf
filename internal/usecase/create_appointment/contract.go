package create_appointment

import (
	"context"
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	"github.com/evelone226/salon-appointment-service/internal/integrations/catalogservice"
	"github.com/evelone226/salon-appointment-service/internal/integrations/userservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByRequestID(ctx context.Context, requestID string) (*domain.Appointment, error)
	FindOverlapping(ctx context.Context, start, end time.Time, staffID *int64) ([]*domain.Appointment, error)
}

// StatusRepository интерфейс справочника статусов
type StatusRepository interface {
	GetByName(ctx context.Context, name domain.StatusName) (*domain.AppointmentStatus, error)
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

// UserServiceClient интерфейс клиента UserService
type UserServiceClient interface {
	GetClient(ctx context.Context, clientID int64) (*userservice.User, error)
	GetStaff(ctx context.Context, staffID int64) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

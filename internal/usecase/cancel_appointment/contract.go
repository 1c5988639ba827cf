package cancel_appointment

import (
	"context"
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Cancel(ctx context.Context, id, fromStatusID, toStatusID int64, reason *string, cancelledBy int64) error
}

// StatusRepository интерфейс справочника статусов
type StatusRepository interface {
	GetByName(ctx context.Context, name domain.StatusName) (*domain.AppointmentStatus, error)
}

// UserServiceClient интерфейс клиента UserService
type UserServiceClient interface {
	HasCapability(ctx context.Context, userID int64, capability string) (bool, error)
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

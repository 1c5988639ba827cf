package appointments

import (
	"context"

	"github.com/evelone226/salon-appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByClient(ctx context.Context, clientID int64, status *domain.StatusName) ([]*domain.Appointment, error)
	ListByStaff(ctx context.Context, staffID int64, status *domain.StatusName) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id, fromStatusID, toStatusID int64) error
}

// StatusRepository интерфейс справочника статусов
type StatusRepository interface {
	GetByName(ctx context.Context, name domain.StatusName) (*domain.AppointmentStatus, error)
}

// UserServiceClient интерфейс клиента UserService
type UserServiceClient interface {
	HasCapability(ctx context.Context, userID int64, capability string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

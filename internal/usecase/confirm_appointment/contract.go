package confirm_appointment

import (
	"context"

	"github.com/evelone226/salon-appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Confirm(ctx context.Context, id, fromStatusID, toStatusID int64, notes *string) error
}

// StatusRepository интерфейс справочника статусов
type StatusRepository interface {
	GetByName(ctx context.Context, name domain.StatusName) (*domain.AppointmentStatus, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

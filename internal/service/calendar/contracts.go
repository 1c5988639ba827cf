package calendar

import (
	"context"
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
)

// CalendarRepository интерфейс репозитория календаря
type CalendarRepository interface {
	GetAllWindows(ctx context.Context) ([]*domain.CalendarWindow, error)
	GetByWeekday(ctx context.Context, weekday time.Weekday) ([]*domain.CalendarWindow, error)
	GetByHoliday(ctx context.Context, holidayID int64) ([]*domain.CalendarWindow, error)
	CreateWindow(ctx context.Context, window *domain.CalendarWindow) (*domain.CalendarWindow, error)
	DeleteWindow(ctx context.Context, id int64) error
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

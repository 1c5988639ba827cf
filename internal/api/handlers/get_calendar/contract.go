package get_calendar

import (
	"context"

	"github.com/evelone226/salon-appointment-service/internal/service/calendar/models"
)

type CalendarService interface {
	ListWindows(ctx context.Context) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

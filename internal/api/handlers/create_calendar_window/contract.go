package create_calendar_window

import (
	"context"

	"github.com/evelone226/salon-appointment-service/internal/service/calendar/models"
)

type CalendarService interface {
	CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package transition_appointment

import (
	"context"

	"github.com/evelone226/salon-appointment-service/internal/service/appointments/models"
)

type AppointmentService interface {
	Complete(ctx context.Context, req *models.TransitionRequest) (*models.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, req *models.TransitionRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_client_appointments

import (
	"context"

	"github.com/evelone226/salon-appointment-service/internal/service/appointments/models"
)

type AppointmentService interface {
	ListByClient(ctx context.Context, req *models.ListByClientRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

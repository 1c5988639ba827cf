package get_staff_appointments

import (
	"context"

	"github.com/evelone226/salon-appointment-service/internal/service/appointments/models"
)

type AppointmentService interface {
	ListByStaff(ctx context.Context, req *models.ListByStaffRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package confirm_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	apptRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/appointment"
	statusRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/status"
)

// UseCase use case подтверждения записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	statusRepo      StatusRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, statusRepo StatusRepository, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		statusRepo:      statusRepo,
		logger:          logger,
	}
}

// Execute подтверждает запись: переход PENDING -> CONFIRMED.
// Переход выполняется compare-and-swap обновлением по старому статусу;
// проигрыш конкурентной гонки означает, что запись уже не PENDING.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmAppointment: id=%d", req.AppointmentID)

	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("ConfirmAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, fmt.Errorf("%w: id=%d", ErrAppointmentNotFound, req.AppointmentID)
		}
		uc.logger.Error("ConfirmAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if !appt.CanBeConfirmed() {
		uc.logger.Warn("ConfirmAppointment: appointment id=%d is in status %q", appt.ID, appt.Status)
		return nil, fmt.Errorf("%w: current status is %q", ErrNotPending, appt.Status)
	}

	confirmedStatus, err := uc.statusRepo.GetByName(ctx, domain.StatusConfirmed)
	if err != nil {
		if errors.Is(err, statusRepo.ErrStatusNotFound) {
			uc.logger.Error("ConfirmAppointment: status %q is missing from the catalog", domain.StatusConfirmed)
			return nil, ErrStatusNotConfigured
		}
		uc.logger.Error("ConfirmAppointment: failed to get confirmed status: %v", err)
		return nil, fmt.Errorf("%w: failed to get confirmed status: %v", ErrInternal, err)
	}

	err = uc.appointmentRepo.Confirm(ctx, appt.ID, appt.StatusID, confirmedStatus.ID, req.Notes)
	if err != nil {
		if errors.Is(err, apptRepo.ErrStaleStatus) {
			// Конкурентный переход успел раньше: перечитываем фактический статус
			fresh, getErr := uc.appointmentRepo.GetByID(ctx, appt.ID)
			if getErr != nil {
				uc.logger.Error("ConfirmAppointment: failed to re-read appointment id=%d: %v", appt.ID, getErr)
				return nil, fmt.Errorf("%w: failed to re-read appointment: %v", ErrInternal, getErr)
			}
			uc.logger.Warn("ConfirmAppointment: lost status race, appointment id=%d is now %q", fresh.ID, fresh.Status)
			return nil, fmt.Errorf("%w: current status is %q", ErrNotPending, fresh.Status)
		}
		uc.logger.Error("ConfirmAppointment: failed to confirm appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: failed to confirm appointment: %v", ErrInternal, err)
	}

	confirmed, err := uc.appointmentRepo.GetByID(ctx, appt.ID)
	if err != nil {
		uc.logger.Error("ConfirmAppointment: failed to re-read appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: failed to re-read appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmAppointment: appointment id=%d confirmed", confirmed.ID)
	return fromDomain(confirmed), nil
}

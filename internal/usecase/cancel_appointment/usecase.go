package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	apptRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/appointment"
	statusRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/status"
)

// UseCase use case отмены записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	statusRepo      StatusRepository
	userClient      UserServiceClient
	timeProvider    TimeProvider
	policy          domain.Policy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	statusRepo StatusRepository,
	userClient UserServiceClient,
	policy domain.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		statusRepo:      statusRepo,
		userClient:      userClient,
		timeProvider:    &RealTimeProvider{},
		policy:          policy,
		logger:          logger,
	}
}

// Execute отменяет запись. Проверки выполняются в фиксированном порядке:
// существование, текущий статус, права на отмену, затем временные ограничения.
// Порядок важен: клиент с чужой записью получает ErrAccessDenied независимо
// от того, прошло время или нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: id=%d, requester=%d", req.AppointmentID, req.RequesterID)

	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.RequesterID <= 0 {
		return nil, fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// 1. Существование записи
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CancelAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, fmt.Errorf("%w: id=%d", ErrAppointmentNotFound, req.AppointmentID)
		}
		uc.logger.Error("CancelAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 2. Текущий статус: повторная отмена и завершенные записи отклоняются
	// до проверки прав — статус не является секретом для владельца ссылки
	switch appt.Status {
	case domain.StatusCancelled:
		uc.logger.Warn("CancelAppointment: appointment id=%d is already cancelled", appt.ID)
		return nil, ErrAlreadyCancelled
	case domain.StatusCompleted, domain.StatusNoShow:
		uc.logger.Warn("CancelAppointment: appointment id=%d is already finished (%s)", appt.ID, appt.Status)
		return nil, fmt.Errorf("%w: status is %q", ErrAlreadyFinished, appt.Status)
	}

	// 3. Права на отмену: участник записи либо пользователь с привилегией
	if !appt.HasStanding(req.RequesterID) {
		allowed, err := uc.userClient.HasCapability(ctx, req.RequesterID, domain.CapabilityCancelAny)
		if err != nil {
			uc.logger.Error("CancelAppointment: failed to check capability for user=%d: %v", req.RequesterID, err)
			return nil, fmt.Errorf("%w: failed to check capability: %v", ErrInternal, err)
		}
		if !allowed {
			uc.logger.Warn("CancelAppointment: user=%d has no rights to cancel appointment id=%d", req.RequesterID, appt.ID)
			return nil, ErrAccessDenied
		}
	}

	// 4. Временные ограничения: запись еще не началась
	// и до начала остается уведомительный срок
	now := uc.timeProvider.Now()
	if !appt.StartTime.After(now) {
		uc.logger.Warn("CancelAppointment: appointment id=%d has already started", appt.ID)
		return nil, ErrAppointmentInPast
	}
	if appt.StartTime.Before(now.Add(uc.policy.CancellationNotice)) {
		uc.logger.Warn("CancelAppointment: appointment id=%d starts within the notice period", appt.ID)
		return nil, fmt.Errorf("%w: appointments must be cancelled at least %s in advance",
			ErrCancellationWindowElapsed, uc.policy.CancellationNotice)
	}

	cancelledStatus, err := uc.statusRepo.GetByName(ctx, domain.StatusCancelled)
	if err != nil {
		if errors.Is(err, statusRepo.ErrStatusNotFound) {
			uc.logger.Error("CancelAppointment: status %q is missing from the catalog", domain.StatusCancelled)
			return nil, ErrStatusNotConfigured
		}
		uc.logger.Error("CancelAppointment: failed to get cancelled status: %v", err)
		return nil, fmt.Errorf("%w: failed to get cancelled status: %v", ErrInternal, err)
	}

	err = uc.appointmentRepo.Cancel(ctx, appt.ID, appt.StatusID, cancelledStatus.ID, req.Reason, req.RequesterID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrStaleStatus) {
			// Конкурентный переход успел раньше: перечитываем фактический статус
			fresh, getErr := uc.appointmentRepo.GetByID(ctx, appt.ID)
			if getErr != nil {
				uc.logger.Error("CancelAppointment: failed to re-read appointment id=%d: %v", appt.ID, getErr)
				return nil, fmt.Errorf("%w: failed to re-read appointment: %v", ErrInternal, getErr)
			}
			uc.logger.Warn("CancelAppointment: lost status race, appointment id=%d is now %q", fresh.ID, fresh.Status)
			if fresh.Status == domain.StatusCancelled {
				return nil, ErrAlreadyCancelled
			}
			return nil, fmt.Errorf("%w: status is %q", ErrAlreadyFinished, fresh.Status)
		}
		uc.logger.Error("CancelAppointment: failed to cancel appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
	}

	cancelled, err := uc.appointmentRepo.GetByID(ctx, appt.ID)
	if err != nil {
		uc.logger.Error("CancelAppointment: failed to re-read appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: failed to re-read appointment: %v", ErrInternal, err)
	}

	// Уведомление уходит клиенту, только если отменял не он сам
	notifyClient := req.NotifyClient && req.RequesterID != cancelled.ClientID

	uc.logger.Info("CancelAppointment: appointment id=%d cancelled by user=%d, notify=%t",
		cancelled.ID, req.RequesterID, notifyClient)
	return fromDomain(cancelled, notifyClient), nil
}

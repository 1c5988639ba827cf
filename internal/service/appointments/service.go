package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	apptRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/appointment"
	statusRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/status"
	"github.com/evelone226/salon-appointment-service/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	statusRepo      StatusRepository
	userClient      UserServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	statusRepo StatusRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		statusRepo:      statusRepo,
		userClient:      userClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видят её участники (создатель, клиент, мастер) и пользователи
// с привилегией управления записями
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, requesterID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkViewAccess(ctx, appt, requesterID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", requesterID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// ListByClient получает историю записей клиента
// Опционально фильтрует по статусу. Клиент видит только свои записи,
// чужие - только пользователи с привилегией управления
func (s *Service) ListByClient(ctx context.Context, req *models.ListByClientRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByClient: fetching appointments for client=%d, requester=%d, status=%v",
		req.ClientID, req.RequesterID, req.Status)

	if req.ClientID != req.RequesterID {
		if err := s.checkManageAccess(ctx, req.RequesterID); err != nil {
			s.logger.Warn("ListByClient: access denied for user=%d to client=%d appointments",
				req.RequesterID, req.ClientID)
			return nil, err
		}
	}

	status, err := s.parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("ListByClient: invalid status=%s for client=%d", *req.Status, req.ClientID)
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListByClient(ctx, req.ClientID, status)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByClient: successfully fetched %d appointment(s) for client=%d",
		len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// ListByStaff получает расписание мастера
// Мастер видит только свое расписание, чужое - только пользователи
// с привилегией управления
func (s *Service) ListByStaff(ctx context.Context, req *models.ListByStaffRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByStaff: fetching appointments for staff=%d, requester=%d, status=%v",
		req.StaffID, req.RequesterID, req.Status)

	if req.StaffID != req.RequesterID {
		if err := s.checkManageAccess(ctx, req.RequesterID); err != nil {
			s.logger.Warn("ListByStaff: access denied for user=%d to staff=%d appointments",
				req.RequesterID, req.StaffID)
			return nil, err
		}
	}

	status, err := s.parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("ListByStaff: invalid status=%s for staff=%d", *req.Status, req.StaffID)
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListByStaff(ctx, req.StaffID, status)
	if err != nil {
		s.logger.Error("ListByStaff: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: ListByStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByStaff: successfully fetched %d appointment(s) for staff=%d",
		len(appointments), req.StaffID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Complete помечает запись завершенной: переход CONFIRMED -> COMPLETED.
// Доступно только пользователям с привилегией управления записями
func (s *Service) Complete(ctx context.Context, req *models.TransitionRequest) (*models.AppointmentResponse, error) {
	return s.transition(ctx, req, domain.StatusCompleted, "Complete")
}

// MarkNoShow помечает неявку клиента: переход CONFIRMED -> NO_SHOW.
// Доступно только пользователям с привилегией управления записями
func (s *Service) MarkNoShow(ctx context.Context, req *models.TransitionRequest) (*models.AppointmentResponse, error) {
	return s.transition(ctx, req, domain.StatusNoShow, "MarkNoShow")
}

// transition выполняет переход записи в указанный статус.
// Переход проверяется по таблице допустимых переходов и применяется
// compare-and-swap обновлением по старому статусу
func (s *Service) transition(ctx context.Context, req *models.TransitionRequest, target domain.StatusName, op string) (*models.AppointmentResponse, error) {
	s.logger.Info("%s: appointment id=%d by user=%d", op, req.AppointmentID, req.RequesterID)

	if err := s.checkManageAccess(ctx, req.RequesterID); err != nil {
		s.logger.Warn("%s: access denied for user=%d", op, req.RequesterID)
		return nil, err
	}

	appt, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, req.AppointmentID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !domain.TransitionAllowed(appt.Status, target) {
		s.logger.Warn("%s: transition %q -> %q is not allowed for appointment id=%d",
			op, appt.Status, target, appt.ID)
		return nil, fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, appt.Status, target)
	}

	targetStatus, err := s.statusRepo.GetByName(ctx, target)
	if err != nil {
		if errors.Is(err, statusRepo.ErrStatusNotFound) {
			s.logger.Error("%s: status %q is missing from the catalog", op, target)
			return nil, ErrStatusNotConfigured
		}
		s.logger.Error("%s: failed to get status %q: %v", op, target, err)
		return nil, fmt.Errorf("%w: %s - failed to get status: %v", ErrInternal, op, err)
	}

	err = s.appointmentRepo.UpdateStatus(ctx, appt.ID, appt.StatusID, targetStatus.ID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrStaleStatus) {
			// Конкурентный переход успел раньше: перечитываем фактический статус
			fresh, getErr := s.appointmentRepo.GetByID(ctx, appt.ID)
			if getErr != nil {
				s.logger.Error("%s: failed to re-read appointment id=%d: %v", op, appt.ID, getErr)
				return nil, fmt.Errorf("%w: %s - failed to re-read appointment: %v", ErrInternal, op, getErr)
			}
			s.logger.Warn("%s: lost status race, appointment id=%d is now %q", op, fresh.ID, fresh.Status)
			return nil, fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, fresh.Status, target)
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, appt.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	updated, err := s.appointmentRepo.GetByID(ctx, appt.ID)
	if err != nil {
		s.logger.Error("%s: failed to re-read appointment id=%d: %v", op, appt.ID, err)
		return nil, fmt.Errorf("%w: %s - failed to re-read appointment: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: appointment id=%d moved to status %q", op, updated.ID, updated.Status)
	return models.FromDomainAppointment(updated), nil
}

// Вспомогательные методы

// checkViewAccess проверяет, что пользователь видит запись:
// участник записи или пользователь с привилегией управления
func (s *Service) checkViewAccess(ctx context.Context, appt *domain.Appointment, requesterID int64) error {
	if appt.HasStanding(requesterID) {
		return nil
	}
	return s.checkManageAccess(ctx, requesterID)
}

// checkManageAccess проверяет привилегию управления записями через UserService
func (s *Service) checkManageAccess(ctx context.Context, requesterID int64) error {
	allowed, err := s.userClient.HasCapability(ctx, requesterID, domain.CapabilityManage)
	if err != nil {
		s.logger.Error("checkManageAccess: failed to check capability for user=%d: %v", requesterID, err)
		return fmt.Errorf("%w: checkManageAccess - failed to check capability: %v", ErrInternal, err)
	}
	if !allowed {
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) parseStatusFilter(status *string) (*domain.StatusName, error) {
	if status == nil {
		return nil, nil
	}
	name, err := models.ToDomainStatusName(*status)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	return &name, nil
}

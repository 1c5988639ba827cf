package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	calendarRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/calendar"
	"github.com/evelone226/salon-appointment-service/internal/service/calendar/models"
)

// Service сервис для работы с календарем салона
type Service struct {
	calendarRepo CalendarRepository
	userClient   UserServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	calendarRepo CalendarRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		userClient:   userClient,
		logger:       logger,
	}
}

// ListWindows возвращает все окна календаря.
// Расписание салона публично, проверка прав не требуется
func (s *Service) ListWindows(ctx context.Context) (*models.WindowListResponse, error) {
	s.logger.Info("ListWindows: fetching calendar windows")

	windows, err := s.calendarRepo.GetAllWindows(ctx)
	if err != nil {
		s.logger.Error("ListWindows: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListWindows: successfully fetched %d window(s)", len(windows))
	return models.FromDomainWindowList(windows), nil
}

// CreateWindow создает окно календаря
// Доступно только пользователям с привилегией управления записями.
// Новое окно не должно пересекаться с существующими окнами того же
// дня недели (или того же праздника)
func (s *Service) CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("CreateWindow: weekday=%d, interval=[%s, %s), holiday=%v by user=%d",
		req.Weekday, req.StartTime, req.EndTime, req.HolidayID, req.RequesterID)

	if err := s.checkManageAccess(ctx, req.RequesterID); err != nil {
		s.logger.Warn("CreateWindow: access denied for user=%d", req.RequesterID)
		return nil, err
	}

	window, err := req.ToDomainWindow()
	if err != nil {
		s.logger.Warn("CreateWindow: invalid window: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	siblings, err := s.siblingWindows(ctx, window)
	if err != nil {
		return nil, err
	}
	for _, sibling := range siblings {
		if window.Overlaps(sibling) {
			s.logger.Warn("CreateWindow: window overlaps existing window id=%d [%s, %s)",
				sibling.ID, sibling.StartTime, sibling.EndTime)
			return nil, fmt.Errorf("%w: window id=%d", ErrWindowOverlap, sibling.ID)
		}
	}

	created, err := s.calendarRepo.CreateWindow(ctx, window)
	if err != nil {
		s.logger.Error("CreateWindow: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWindow: successfully created window id=%d", created.ID)
	return models.FromDomainWindow(created), nil
}

// DeleteWindow удаляет окно календаря
// Доступно только пользователям с привилегией управления записями.
// Существующие записи при удалении окна не трогаются
func (s *Service) DeleteWindow(ctx context.Context, id int64, requesterID int64) error {
	s.logger.Info("DeleteWindow: window id=%d by user=%d", id, requesterID)

	if err := s.checkManageAccess(ctx, requesterID); err != nil {
		s.logger.Warn("DeleteWindow: access denied for user=%d", requesterID)
		return err
	}

	if err := s.calendarRepo.DeleteWindow(ctx, id); err != nil {
		if errors.Is(err, calendarRepo.ErrWindowNotFound) {
			s.logger.Warn("DeleteWindow: window id=%d not found", id)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteWindow: successfully deleted window id=%d", id)
	return nil
}

// Вспомогательные методы

// siblingWindows возвращает окна, с которыми новое окно может пересекаться:
// окна того же праздника либо обычные окна того же дня недели
func (s *Service) siblingWindows(ctx context.Context, window *domain.CalendarWindow) ([]*domain.CalendarWindow, error) {
	if window.HolidayID != nil {
		siblings, err := s.calendarRepo.GetByHoliday(ctx, *window.HolidayID)
		if err != nil {
			s.logger.Error("siblingWindows: failed to get holiday windows: %v", err)
			return nil, fmt.Errorf("%w: siblingWindows - failed to get holiday windows: %v", ErrInternal, err)
		}
		return siblings, nil
	}

	siblings, err := s.calendarRepo.GetByWeekday(ctx, window.Weekday)
	if err != nil {
		s.logger.Error("siblingWindows: failed to get weekday windows: %v", err)
		return nil, fmt.Errorf("%w: siblingWindows - failed to get weekday windows: %v", ErrInternal, err)
	}
	return siblings, nil
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

package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	calendarRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/calendar"
	catalogClient "github.com/evelone226/salon-appointment-service/internal/integrations/catalogservice"
)

// UseCase use case подбора свободных слотов
type UseCase struct {
	appointmentRepo AppointmentRepository
	calendarRepo    CalendarRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	policy          domain.Policy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calendarRepo CalendarRepository,
	catalogClient CatalogServiceClient,
	policy domain.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calendarRepo:    calendarRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		policy:          policy,
		logger:          logger,
	}
}

// Execute возвращает свободные слоты на дату: кандидаты генерируются по окнам
// календаря с шагом политики, затем фильтруются по текущему времени и
// существующим записям мастера.
//
// Подбор слотов информативен и не резервирует время: гонку с конкурентным
// созданием записи разрешает create_appointment.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, staff=%v, services=%v",
		req.Date.Format(domain.DateFormat), req.StaffID, req.ServiceIDs)

	now := uc.timeProvider.Now()

	if err := validateRequest(req, now, uc.policy); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	windows, err := uc.windowsForDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	// Салон закрыт на эту дату: пустой список слотов, а не ошибка
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return fromDomainSlots(req.Date, req.StaffID, duration, nil), nil
	}

	var appointments []*domain.Appointment
	if req.StaffID != nil {
		appointments, err = uc.appointmentRepo.ListForDate(ctx, req.Date, req.StaffID)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list appointments: %v", err)
			return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}
	}

	available := make([]domain.AvailableSlot, 0)
	for _, window := range windows {
		candidates, err := generateWindowSlots(window, duration, uc.policy.SlotStepMinutes)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to generate slots for window id=%d: %v", window.ID, err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}
		available = append(available, filterSlots(candidates, duration, req.Date, now, req.StaffID, appointments)...)
	}

	uc.logger.Info("GetAvailableSlots: found %d slot(s) on %s", len(available), req.Date.Format(domain.DateFormat))
	return fromDomainSlots(req.Date, req.StaffID, duration, available), nil
}

// resolveDuration вычисляет длительность слота: явная или сумма услуг
// с нижней границей из политики
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes, nil
	}

	total := 0
	for _, serviceID := range req.ServiceIDs {
		svc, err := uc.catalogClient.GetService(ctx, serviceID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", serviceID)
				return 0, fmt.Errorf("%w: service id=%d", ErrServiceNotFound, serviceID)
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", serviceID, err)
			return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		total += svc.DurationMinutes
	}

	if total < uc.policy.MinDurationMinutes {
		return uc.policy.MinDurationMinutes, nil
	}
	return total, nil
}

// windowsForDate возвращает окна работы салона на дату:
// окна праздника имеют приоритет над окнами дня недели
func (uc *UseCase) windowsForDate(ctx context.Context, date time.Time) ([]*domain.CalendarWindow, error) {
	holiday, err := uc.calendarRepo.FindHolidayByDate(ctx, date)
	switch {
	case err == nil:
		windows, err := uc.calendarRepo.GetByHoliday(ctx, holiday.ID)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get holiday windows: %v", err)
			return nil, fmt.Errorf("%w: failed to get holiday windows: %v", ErrInternal, err)
		}
		return windows, nil
	case errors.Is(err, calendarRepo.ErrHolidayNotFound):
		windows, err := uc.calendarRepo.GetByWeekday(ctx, date.Weekday())
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get weekday windows: %v", err)
			return nil, fmt.Errorf("%w: failed to get weekday windows: %v", ErrInternal, err)
		}
		return windows, nil
	default:
		uc.logger.Error("GetAvailableSlots: failed to find holiday: %v", err)
		return nil, fmt.Errorf("%w: failed to find holiday: %v", ErrInternal, err)
	}
}

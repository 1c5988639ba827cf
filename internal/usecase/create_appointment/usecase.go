package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	apptRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/appointment"
	calendarRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/calendar"
	statusRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/status"
	catalogClient "github.com/evelone226/salon-appointment-service/internal/integrations/catalogservice"
	userClient "github.com/evelone226/salon-appointment-service/internal/integrations/userservice"
	"github.com/evelone226/salon-appointment-service/pkg/types"
)

// resolvedService услуга, разрешенная через каталог
type resolvedService struct {
	ID              int64
	Name            string
	DurationMinutes int
}

// UseCase use case создания записи (booking orchestrator)
type UseCase struct {
	appointmentRepo AppointmentRepository
	statusRepo      StatusRepository
	calendarRepo    CalendarRepository
	catalogClient   CatalogServiceClient
	userClient      UserServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	policy          domain.Policy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	statusRepo StatusRepository,
	calendarRepo CalendarRepository,
	catalogClient CatalogServiceClient,
	userClient UserServiceClient,
	txManager TransactionManager,
	policy domain.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		statusRepo:      statusRepo,
		calendarRepo:    calendarRepo,
		catalogClient:   catalogClient,
		userClient:      userClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		policy:          policy,
		logger:          logger,
	}
}

// Execute выполняет сценарий создания записи: валидация, разрешение связанных
// сущностей, вычисление длительности, проверка календаря и пересечений,
// создание записи в статусе PENDING.
//
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции
// с блокировкой найденных строк; гонку между проверкой и вставкой при
// конкурентных запросах окончательно закрывает exclusion constraint в БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request, creatorID int64) (*Response, error) {
	uc.logger.Info("CreateAppointment: creator=%d, client=%d, staff=%v, start=%s, services=%v",
		creatorID, req.ClientID, req.StaffID, req.StartTime.Format(domain.DateFormat+" "+domain.TimeFormat), req.ServiceIDs)

	now := uc.timeProvider.Now()

	// 1. Структурная валидация входных данных
	if err := validateRequest(req, now, uc.policy); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Референциальная валидация: клиент, мастер, услуги
	if _, err := uc.userClient.GetClient(ctx, req.ClientID); err != nil {
		if errors.Is(err, userClient.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
			return nil, fmt.Errorf("%w: client id=%d", ErrClientNotFound, req.ClientID)
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	if req.StaffID != nil {
		if _, err := uc.userClient.GetStaff(ctx, *req.StaffID); err != nil {
			if errors.Is(err, userClient.ErrStaffNotFound) {
				uc.logger.Warn("CreateAppointment: staff id=%d not found", *req.StaffID)
				return nil, fmt.Errorf("%w: staff id=%d", ErrStaffNotFound, *req.StaffID)
			}
			uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
	}

	services, err := uc.resolveServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// 3. Вычисление длительности: явная или сумма услуг с нижней границей
	duration := resolveDuration(req.DurationMinutes, services, uc.policy)
	startTime := req.StartTime
	endTime := startTime.Add(durationAsTime(duration))

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4. Проверка пересечений по мастеру.
		// Без мастера (самозапись) проверка пропускается: ограничение общей
		// вместимости салона — отдельное продуктовое решение.
		if req.StaffID != nil {
			conflicts, err := uc.appointmentRepo.FindOverlapping(txCtx, startTime, endTime, req.StaffID)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to find overlapping appointments: %v", err)
				return fmt.Errorf("%w: failed to find overlapping appointments: %v", ErrInternal, err)
			}
			if len(conflicts) > 0 {
				uc.logger.Warn("CreateAppointment: slot taken, staff=%d has %d overlapping appointment(s)",
					*req.StaffID, len(conflicts))
				return ErrSlotTaken
			}
		} else {
			uc.logger.Info("CreateAppointment: no staff specified, skipping conflict check")
		}

		// 5. Разрешение статуса PENDING и окна календаря
		pendingStatus, err := uc.statusRepo.GetByName(txCtx, domain.StatusPending)
		if err != nil {
			if errors.Is(err, statusRepo.ErrStatusNotFound) {
				uc.logger.Error("CreateAppointment: status %q is missing from the catalog", domain.StatusPending)
				return ErrStatusNotConfigured
			}
			uc.logger.Error("CreateAppointment: failed to get pending status: %v", err)
			return fmt.Errorf("%w: failed to get pending status: %v", ErrInternal, err)
		}

		window, err := uc.resolveCalendarWindow(txCtx, startTime, duration)
		if err != nil {
			return err
		}

		// 6. Конструирование записи в статусе PENDING
		appt := &domain.Appointment{
			CreatorID:        creatorID,
			ClientID:         req.ClientID,
			StaffID:          req.StaffID,
			CalendarWindowID: window.ID,
			StatusID:         pendingStatus.ID,
			Status:           pendingStatus.Name,
			ServiceIDs:       req.ServiceIDs,
			StartTime:        startTime,
			DurationMinutes:  duration,
			Notes:            req.Notes,
			RequestID:        req.RequestID,
		}

		// 7. Сохранение
		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			switch {
			case errors.Is(err, apptRepo.ErrSlotTaken):
				// Exclusion constraint сработал на конкурентной вставке
				uc.logger.Warn("CreateAppointment: slot taken on insert, staff=%v", req.StaffID)
				return ErrSlotTaken
			case errors.Is(err, apptRepo.ErrDuplicateRequest):
				// Повтор запроса с тем же ключом идемпотентности:
				// возвращаем ранее созданную запись
				existing, getErr := uc.appointmentRepo.GetByRequestID(txCtx, *req.RequestID)
				if getErr != nil {
					uc.logger.Error("CreateAppointment: failed to load appointment by request id: %v", getErr)
					return fmt.Errorf("%w: failed to load appointment by request id: %v", ErrInternal, getErr)
				}
				uc.logger.Info("CreateAppointment: idempotent replay, returning appointment id=%d", existing.ID)
				result = existing
				return nil
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)
	return fromDomain(result), nil
}

// resolveServices разрешает все услуги через каталог.
// Повторы услуг допустимы и разрешаются заново: снапшот намерения клиента.
func (uc *UseCase) resolveServices(ctx context.Context, serviceIDs []int64) ([]*resolvedService, error) {
	services := make([]*resolvedService, 0, len(serviceIDs))

	for _, serviceID := range serviceIDs {
		svc, err := uc.catalogClient.GetService(ctx, serviceID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service id=%d not found", serviceID)
				return nil, fmt.Errorf("%w: service id=%d", ErrServiceNotFound, serviceID)
			}
			uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", serviceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		services = append(services, &resolvedService{
			ID:              svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
		})
	}

	return services, nil
}

// resolveCalendarWindow находит окно работы салона, целиком вмещающее слот.
// Окна праздника имеют приоритет над окнами дня недели.
func (uc *UseCase) resolveCalendarWindow(ctx context.Context, startTime time.Time, duration int) (*domain.CalendarWindow, error) {
	var windows []*domain.CalendarWindow

	holiday, err := uc.calendarRepo.FindHolidayByDate(ctx, startTime)
	switch {
	case err == nil:
		windows, err = uc.calendarRepo.GetByHoliday(ctx, holiday.ID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get holiday windows: %v", err)
			return nil, fmt.Errorf("%w: failed to get holiday windows: %v", ErrInternal, err)
		}
	case errors.Is(err, calendarRepo.ErrHolidayNotFound):
		windows, err = uc.calendarRepo.GetByWeekday(ctx, startTime.Weekday())
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get weekday windows: %v", err)
			return nil, fmt.Errorf("%w: failed to get weekday windows: %v", ErrInternal, err)
		}
	default:
		uc.logger.Error("CreateAppointment: failed to find holiday: %v", err)
		return nil, fmt.Errorf("%w: failed to find holiday: %v", ErrInternal, err)
	}

	if len(windows) == 0 {
		uc.logger.Warn("CreateAppointment: salon is closed on %s", startTime.Format(domain.DateFormat))
		return nil, ErrClosedOnDate
	}

	slotStart := types.NewTimeString(startTime)
	slotEnd, err := slotStart.AddMinutes(duration)
	if err != nil {
		// Слот выходит за пределы суток
		uc.logger.Warn("CreateAppointment: slot %s+%dm passes midnight", slotStart, duration)
		return nil, ErrOutsideBusinessHours
	}

	window := domain.FindCoveringWindow(windows, slotStart, slotEnd)
	if window == nil {
		uc.logger.Warn("CreateAppointment: slot [%s, %s) is outside business hours", slotStart, slotEnd)
		return nil, ErrOutsideBusinessHours
	}

	return window, nil
}

func durationAsTime(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}

package create_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evelone226/salon-appointment-service/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Выполняется до любых обращений к репозиториям и внешним сервисам.
func validateRequest(req *Request, now time.Time, policy domain.Policy) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.StartTime.Before(now) {
		return ErrDateInPast
	}

	// Горизонт бронирования: не дальше N календарных месяцев вперед
	horizon := now.AddDate(0, policy.BookingHorizonMonths, 0)
	if req.StartTime.After(horizon) {
		return fmt.Errorf("%w: can only book %d months in advance", ErrDateTooFarInFuture, policy.BookingHorizonMonths)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service must be selected", ErrInvalidInput)
	}
	for _, serviceID := range req.ServiceIDs {
		if serviceID <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.DurationMinutes != nil {
		if err := validateExplicitDuration(*req.DurationMinutes, policy); err != nil {
			return err
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.RequestID != nil {
		if _, err := uuid.Parse(*req.RequestID); err != nil {
			return fmt.Errorf("%w: requestID must be a valid UUID", ErrInvalidInput)
		}
	}

	return nil
}

// validateExplicitDuration проверяет явно заданную длительность:
// в границах политики и кратна шагу
func validateExplicitDuration(minutes int, policy domain.Policy) error {
	if minutes < policy.MinDurationMinutes || minutes > policy.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, policy.MinDurationMinutes, policy.MaxDurationMinutes)
	}
	if minutes%policy.DurationStepMinutes != 0 {
		return fmt.Errorf("%w: durationMinutes must be a multiple of %d",
			ErrInvalidInput, policy.DurationStepMinutes)
	}
	return nil
}

// resolveDuration вычисляет длительность записи: явная длительность запроса
// или сумма длительностей услуг с нижней границей из политики
func resolveDuration(explicit *int, services []*resolvedService, policy domain.Policy) int {
	if explicit != nil {
		return *explicit
	}

	total := 0
	for _, svc := range services {
		total += svc.DurationMinutes
	}

	if total < policy.MinDurationMinutes {
		return policy.MinDurationMinutes
	}
	return total
}

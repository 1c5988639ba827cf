package get_available_slots

import (
	"fmt"
	"time"

	"github.com/evelone226/salon-appointment-service/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Длительность определяется либо явно, либо через услуги — хотя бы одно
// из двух должно присутствовать.
func validateRequest(req *Request, now time.Time, policy domain.Policy) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if isDateInPast(req.Date, now) {
		return ErrDateInPast
	}

	horizon := now.AddDate(0, policy.BookingHorizonMonths, 0)
	if req.Date.After(horizon) {
		return fmt.Errorf("%w: can only look %d months ahead", ErrDateTooFarInFuture, policy.BookingHorizonMonths)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 && req.DurationMinutes == nil {
		return fmt.Errorf("%w: either serviceIDs or durationMinutes is required", ErrInvalidInput)
	}
	for _, serviceID := range req.ServiceIDs {
		if serviceID <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.DurationMinutes != nil {
		minutes := *req.DurationMinutes
		if minutes < policy.MinDurationMinutes || minutes > policy.MaxDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, policy.MinDurationMinutes, policy.MaxDurationMinutes)
		}
		if minutes%policy.DurationStepMinutes != 0 {
			return fmt.Errorf("%w: durationMinutes must be a multiple of %d",
				ErrInvalidInput, policy.DurationStepMinutes)
		}
	}

	return nil
}

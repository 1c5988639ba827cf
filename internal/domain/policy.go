package domain

import "time"

// Policy настраиваемые бизнес-константы бронирования.
// Значения задаются в конфигурации и передаются в usecase'ы при сборке,
// чтобы политику можно было менять без правки логики.
type Policy struct {
	CancellationNotice   time.Duration // минимальный интервал до начала записи для отмены
	BookingHorizonMonths int           // как далеко вперед можно записываться
	MinDurationMinutes   int
	MaxDurationMinutes   int
	DurationStepMinutes  int
	SlotStepMinutes      int // шаг сетки при подборе свободных слотов
}

// DefaultPolicy returns the policy with default business constants
func DefaultPolicy() Policy {
	return Policy{
		CancellationNotice:   DefaultCancellationNoticeMinutes * time.Minute,
		BookingHorizonMonths: DefaultBookingHorizonMonths,
		MinDurationMinutes:   MinAppointmentMinutes,
		MaxDurationMinutes:   MaxAppointmentMinutes,
		DurationStepMinutes:  DurationStepMinutes,
		SlotStepMinutes:      DefaultSlotStepMinutes,
	}
}

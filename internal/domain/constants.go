package domain

// Default policy values
const (
	DefaultCancellationNoticeMinutes = 120 // 2 часа до начала записи
	DefaultBookingHorizonMonths      = 6
	DefaultSlotStepMinutes           = 15
)

// Business validation constants
const (
	MinAppointmentMinutes = 15
	MaxAppointmentMinutes = 480 // 8 hours
	DurationStepMinutes   = 15

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Capabilities, проверяемые через UserService
const (
	// CapabilityCancelAny право отменять чужие записи (администратор)
	CapabilityCancelAny = "appointments:cancel"

	// CapabilityManage право управлять записями и календарем (менеджер)
	CapabilityManage = "appointments:manage"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

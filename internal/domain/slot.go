package domain

import "github.com/evelone226/salon-appointment-service/pkg/types"

// AvailableSlot represents a time slot available for booking
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	StaffID         *int64 // nil = слот без привязки к мастеру
}

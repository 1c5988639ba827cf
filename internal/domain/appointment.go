package domain

import "time"

// Appointment represents a client appointment with one or more services,
// optionally assigned to a staff member. Aggregate root of the booking flow.
type Appointment struct {
	ID               int64
	CreatorID        int64  // кто оформил запись (клиент или сотрудник от его имени)
	ClientID         int64  // кто получает услугу
	StaffID          *int64 // nil = самозапись без закрепленного мастера
	CalendarWindowID int64
	StatusID         int64
	Status           StatusName // денормализованное имя статуса (join со справочником)
	ServiceIDs       []int64    // снапшот выбранных услуг, порядок и повторы сохраняются
	StartTime        time.Time
	DurationMinutes  int

	Notes     *string
	RequestID *string // клиентский ключ идемпотентности (UUID)

	CancellationReason *string
	CancelledBy        *int64
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the derived end of the appointment interval [start, end).
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsTerminal returns true if the appointment reached a terminal status
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// IsActive returns true if the appointment counts for conflict detection
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// CanBeConfirmed returns true if the appointment can be confirmed
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusPending
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// HasStanding проверяет, имеет ли пользователь отношение к записи:
// создатель, клиент или закрепленный мастер
func (a *Appointment) HasStanding(userID int64) bool {
	if a.CreatorID == userID || a.ClientID == userID {
		return true
	}
	return a.StaffID != nil && *a.StaffID == userID
}

// OverlapsInterval проверяет пересечение с интервалом [start, end),
// границы впритык пересечением не считаются
func (a *Appointment) OverlapsInterval(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime().After(start)
}

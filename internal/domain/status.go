package domain

import (
	"errors"
	"time"
)

// StatusName represents the lifecycle status of an appointment
type StatusName string

const (
	StatusPending   StatusName = "pending"
	StatusConfirmed StatusName = "confirmed"
	StatusCancelled StatusName = "cancelled"
	StatusCompleted StatusName = "completed"
	StatusNoShow    StatusName = "no_show"
)

// ErrUnknownStatus возвращается при неизвестном имени статуса
var ErrUnknownStatus = errors.New("unknown appointment status")

// AppointmentStatus запись справочника статусов.
// Записи ссылаются на статус по id, справочник может меняться независимо.
type AppointmentStatus struct {
	ID          int64
	Name        StatusName
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AllStatuses полный набор статусов жизненного цикла.
// Используется для проверки справочника при старте сервиса.
var AllStatuses = []StatusName{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// TerminalStatuses статусы без исходящих переходов
var TerminalStatuses = []StatusName{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// ConflictStatuses статусы, учитываемые при поиске пересечений слотов
var ConflictStatuses = []StatusName{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// transitions таблица допустимых переходов конечного автомата статусов
var transitions = map[StatusName][]StatusName{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
}

// TransitionAllowed reports whether the from → to status transition is legal
func TransitionAllowed(from, to StatusName) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s StatusName) IsTerminal() bool {
	for _, terminal := range TerminalStatuses {
		if s == terminal {
			return true
		}
	}
	return false
}

// ParseStatusName validates a raw string against the known status set
func ParseStatusName(s string) (StatusName, error) {
	name := StatusName(s)
	for _, known := range AllStatuses {
		if name == known {
			return name, nil
		}
	}
	return "", ErrUnknownStatus
}

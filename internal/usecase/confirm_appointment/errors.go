package confirm_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("confirm_appointment: appointment not found")

	// ErrNotPending возвращается, когда запись не в статусе PENDING
	ErrNotPending = errors.New("confirm_appointment: appointment is not pending")

	// ErrStatusNotConfigured возвращается, когда в справочнике нет статуса CONFIRMED
	ErrStatusNotConfigured = errors.New("confirm_appointment: status catalog is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_appointment: internal error")
)

package cancel_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrAlreadyCancelled возвращается, когда запись уже отменена
	ErrAlreadyCancelled = errors.New("cancel_appointment: appointment is already cancelled")

	// ErrAlreadyFinished возвращается, когда запись завершена или помечена no-show
	ErrAlreadyFinished = errors.New("cancel_appointment: appointment is already finished")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на отмену
	ErrAccessDenied = errors.New("cancel_appointment: access denied")

	// ErrAppointmentInPast возвращается, когда время начала записи уже прошло
	ErrAppointmentInPast = errors.New("cancel_appointment: appointment has already started")

	// ErrCancellationWindowElapsed возвращается, когда до начала записи
	// осталось меньше минимального уведомительного срока
	ErrCancellationWindowElapsed = errors.New("cancel_appointment: cancellation window has elapsed")

	// ErrStatusNotConfigured возвращается, когда в справочнике нет статуса CANCELLED
	ErrStatusNotConfigured = errors.New("cancel_appointment: status catalog is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)

package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_appointment: client not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("create_appointment: staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrDateInPast возвращается, когда время начала уже прошло
	ErrDateInPast = errors.New("create_appointment: start time is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_appointment: start time is beyond the booking horizon")

	// ErrSlotTaken возвращается, когда слот мастера пересекается с существующей записью
	ErrSlotTaken = errors.New("create_appointment: time slot unavailable")

	// ErrClosedOnDate возвращается, когда на эту дату не настроены рабочие часы
	ErrClosedOnDate = errors.New("create_appointment: no operating hours configured for this day")

	// ErrOutsideBusinessHours возвращается, когда слот не помещается ни в одно окно работы
	ErrOutsideBusinessHours = errors.New("create_appointment: slot is outside business hours")

	// ErrStatusNotConfigured возвращается, когда в справочнике нет статуса PENDING.
	// Это ошибка конфигурации развертывания, а не запроса.
	ErrStatusNotConfigured = errors.New("create_appointment: status catalog is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

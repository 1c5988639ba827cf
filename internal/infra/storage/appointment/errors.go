package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается при нарушении exclusion constraint на слот мастера
	ErrSlotTaken = errors.New("appointment.repository: staff time slot already taken")

	// ErrDuplicateRequest возвращается при повторной вставке с тем же request_id
	ErrDuplicateRequest = errors.New("appointment.repository: duplicate request id")

	// ErrStaleStatus возвращается, когда CAS-обновление статуса не изменило строк:
	// запись не существует либо её статус уже изменился конкурентно
	ErrStaleStatus = errors.New("appointment.repository: appointment status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

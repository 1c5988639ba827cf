package calendar

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно календаря не найдено
	ErrWindowNotFound = errors.New("calendar.repository: calendar window not found")

	// ErrHolidayNotFound возвращается, когда на дату нет праздника
	ErrHolidayNotFound = errors.New("calendar.repository: holiday not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendar.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendar.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendar.repository: failed to scan row")
)

package calendar

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("calendar: invalid input data")

	// ErrWindowNotFound возвращается, когда окно календаря не найдено
	ErrWindowNotFound = errors.New("calendar: window not found")

	// ErrWindowOverlap возвращается, когда новое окно пересекается с существующим
	ErrWindowOverlap = errors.New("calendar: window overlaps an existing window")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("calendar: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendar: internal error")
)

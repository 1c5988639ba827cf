package status

import "errors"

var (
	// ErrStatusNotFound возвращается, когда статус отсутствует в справочнике
	ErrStatusNotFound = errors.New("status.repository: status not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("status.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("status.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("status.repository: failed to scan row")
)

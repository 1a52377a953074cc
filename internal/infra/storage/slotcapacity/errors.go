package slotcapacity

import "errors"

var (
	// ErrCapacityNotFound возвращается, когда для слота не задана вместимость
	ErrCapacityNotFound = errors.New("slotcapacity.repository: capacity not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slotcapacity.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slotcapacity.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slotcapacity.repository: failed to scan row")
)

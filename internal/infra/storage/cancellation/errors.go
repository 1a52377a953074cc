package cancellation

import "errors"

var (
	// ErrCancellationNotFound возвращается, когда заявка на отмену не найдена
	ErrCancellationNotFound = errors.New("cancellation.repository: cancellation request not found")

	// ErrDuplicatePending возвращается при повторной заявке на отмену той же записи
	ErrDuplicatePending = errors.New("cancellation.repository: registration already has a pending cancellation")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cancellation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("cancellation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("cancellation.repository: failed to scan row")
)

package faculty

import "errors"

var (
	// ErrFacultyNotFound возвращается, когда факультет не найден
	ErrFacultyNotFound = errors.New("faculty.repository: faculty not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("faculty.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("faculty.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("faculty.repository: failed to scan row")
)

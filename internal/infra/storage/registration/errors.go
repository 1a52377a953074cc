package registration

import "errors"

var (
	// ErrRegistrationNotFound возвращается, когда запись не найдена
	ErrRegistrationNotFound = errors.New("registration.repository: registration not found")

	// ErrDuplicateActive возвращается при попытке создать вторую активную запись кандидата
	ErrDuplicateActive = errors.New("registration.repository: candidate already has an active registration")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("registration.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("registration.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("registration.repository: failed to scan row")
)

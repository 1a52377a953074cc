package faculty

import "errors"

var (
	// ErrNotAuthorized возвращается, когда пользователь не админ факультета
	ErrNotAuthorized = errors.New("user is not a faculty admin")

	// ErrFacultyNotFound возвращается, когда факультет не найден
	ErrFacultyNotFound = errors.New("faculty not found")

	// ErrInvalidLockout возвращается при окне блокировки вне допустимого диапазона
	ErrInvalidLockout = errors.New("invalid lockout hours")

	// ErrInvalidPolicy возвращается при неизвестном режиме отмены
	ErrInvalidPolicy = errors.New("invalid cancellation policy")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

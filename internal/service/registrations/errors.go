package registrations

import "errors"

var (
	// ErrNoActiveBooking возвращается, когда у кандидата нет активной записи
	ErrNoActiveBooking = errors.New("candidate has no active booking")

	// ErrNotAuthorized возвращается, когда пользователь не админ факультета
	ErrNotAuthorized = errors.New("user is not a faculty admin")

	// ErrFacultyNotFound возвращается, когда факультет не найден
	ErrFacultyNotFound = errors.New("faculty not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

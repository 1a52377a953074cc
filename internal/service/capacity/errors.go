package capacity

import "errors"

var (
	// ErrNotAuthorized возвращается, когда пользователь не админ факультета
	ErrNotAuthorized = errors.New("user is not a faculty admin")

	// ErrFacultyNotFound возвращается, когда факультет не найден
	ErrFacultyNotFound = errors.New("faculty not found")

	// ErrInvalidSeats возвращается при лимите мест вне допустимого диапазона
	ErrInvalidSeats = errors.New("invalid seats value")

	// ErrMalformedSlot возвращается при нечитаемой метке даты или интервала
	ErrMalformedSlot = errors.New("malformed slot label")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

package list_open_slots

import "errors"

var (
	// ErrFacultyNotFound возвращается, когда факультет не найден
	ErrFacultyNotFound = errors.New("list_open_slots: faculty not found")

	// ErrMalformedDate возвращается при нечитаемой метке даты
	ErrMalformedDate = errors.New("list_open_slots: malformed date label")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_open_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_open_slots: internal error")
)

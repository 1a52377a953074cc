package book_slot

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("book_slot: user not found")

	// ErrNotCandidate возвращается, когда записаться пытается не кандидат
	ErrNotCandidate = errors.New("book_slot: user is not a candidate")

	// ErrFacultyNotFound возвращается, когда факультет не найден
	ErrFacultyNotFound = errors.New("book_slot: faculty not found")

	// ErrMalformedSlot возвращается при нечитаемой метке даты или интервала
	ErrMalformedSlot = errors.New("book_slot: malformed slot label")

	// ErrAlreadyBooked возвращается, когда у кандидата уже есть активная запись
	ErrAlreadyBooked = errors.New("book_slot: candidate already has an active registration")

	// ErrLockedOut возвращается при попытке записаться внутри окна блокировки
	ErrLockedOut = errors.New("book_slot: slot is inside the lockout window")

	// ErrCapacityExhausted возвращается, когда в слоте нет свободных мест
	ErrCapacityExhausted = errors.New("book_slot: no seats left in the slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)

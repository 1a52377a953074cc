package cancel_booking

import "errors"

var (
	// ErrNoActiveBooking возвращается, когда у кандидата нет активной записи
	ErrNoActiveBooking = errors.New("cancel_booking: candidate has no active registration")

	// ErrLockedOut возвращается при попытке отмены внутри окна блокировки
	ErrLockedOut = errors.New("cancel_booking: slot is inside the lockout window")

	// ErrCancellationPending возвращается, когда заявка на отмену уже открыта
	ErrCancellationPending = errors.New("cancel_booking: cancellation request already pending")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)

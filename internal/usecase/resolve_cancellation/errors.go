package resolve_cancellation

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка на отмену не найдена
	ErrRequestNotFound = errors.New("resolve_cancellation: cancellation request not found")

	// ErrAlreadyResolved возвращается, когда заявка уже решена
	ErrAlreadyResolved = errors.New("resolve_cancellation: request already resolved")

	// ErrNotAuthorized возвращается, когда решение принимает не админ факультета
	ErrNotAuthorized = errors.New("resolve_cancellation: user is not the faculty admin")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_cancellation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_cancellation: internal error")
)

package availability

import "errors"

var (
	// ErrNotAuthorized возвращается, когда пользователь не админ факультета
	ErrNotAuthorized = errors.New("user is not a faculty admin")

	// ErrNoSpreadsheet возвращается, когда у факультета нет привязанной таблицы
	ErrNoSpreadsheet = errors.New("faculty has no spreadsheet url")

	// ErrUpstreamSync возвращается, когда синхронизация упёрлась в лимиты API
	ErrUpstreamSync = errors.New("sheet sync failed: api budget exhausted")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

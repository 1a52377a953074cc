package sheets

import "errors"

var (
	// ErrRateLimited возвращается при превышении квоты Google Sheets API (429)
	ErrRateLimited = errors.New("sheets client: rate limited")

	// ErrSheetNotFound возвращается, когда лист с указанным именем не найден
	ErrSheetNotFound = errors.New("sheets client: worksheet not found")

	// ErrInvalidURL возвращается при нечитаемой ссылке на таблицу
	ErrInvalidURL = errors.New("sheets client: invalid spreadsheet url")

	// ErrUnavailable возвращается при прочих ошибках Google Sheets API
	ErrUnavailable = errors.New("sheets client: service unavailable")
)

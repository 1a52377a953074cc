package resolve_cancellation

import "github.com/google/uuid"

// Request модель запроса на решение по заявке на отмену
type Request struct {
	AdminUserID int64     // ID админа, принимающего решение
	RequestID   uuid.UUID // ID заявки
	Approve     bool      // true - одобрить отмену, false - отклонить
}

// Response модель ответа с принятым решением
type Response struct {
	RequestID      uuid.UUID // ID заявки
	RegistrationID int64     // ID записи
	Status         string    // approved или rejected
}

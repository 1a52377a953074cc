package cancel_booking

import "github.com/google/uuid"

// Request модель запроса на отмену записи
type Request struct {
	UserID int64  // ID кандидата
	Reason string // Причина отмены
}

// Статусы результата отмены
const (
	OutcomeCancelled = "cancelled"        // Запись отменена сразу
	OutcomePending   = "pending_approval" // Создана заявка, ждёт решения админа
)

// Response модель ответа на запрос отмены
type Response struct {
	Outcome        string     // cancelled или pending_approval
	RegistrationID int64      // ID записи
	RequestID      *uuid.UUID // ID заявки на отмену (только для pending_approval)
}

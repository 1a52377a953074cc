package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Типы событий outbox
const (
	// EventRegistrationMirror зеркалирование записи в Google-таблицу факультета
	EventRegistrationMirror = "registration_mirror"
)

// OutboxEvent событие для фоновой доставки во внешние системы.
// Вставляется в той же транзакции, что и породившее его изменение,
// и публикуется отдельным воркером: медленные вызовы таблиц никогда
// не задерживают ответ кандидату.
type OutboxEvent struct {
	ID        uuid.UUID
	EventType string
	Payload   json.RawMessage
	Attempts  int
	Published bool
	CreatedAt time.Time
}

// RegistrationMirrorPayload полезная нагрузка события зеркалирования записи
type RegistrationMirrorPayload struct {
	RegistrationID int64  `json:"registration_id"`
	FacultyID      int64  `json:"faculty_id"`
	CandidateName  string `json:"candidate_name"`
	DateLabel      string `json:"date_label"`
	SlotLabel      string `json:"slot_label"`
	Canceled       bool   `json:"canceled"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// CancellationStatus статус запроса на отмену записи
type CancellationStatus string

const (
	CancellationStatusPending  CancellationStatus = "pending"
	CancellationStatusApproved CancellationStatus = "approved"
	CancellationStatusRejected CancellationStatus = "rejected"
)

// PendingCancellation запрос кандидата на отмену записи при политике approval.
// Хранится в БД, а не в тексте чат-сообщения, поэтому переживает рестарт
// процесса и ожидание решения админа любой длины. Срока жизни у запроса нет.
type PendingCancellation struct {
	ID             uuid.UUID
	RegistrationID int64
	UserID         int64
	FacultyID      int64
	Reason         string
	Status         CancellationStatus
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

// IsResolved возвращает true, если по запросу уже принято решение
func (c *PendingCancellation) IsResolved() bool {
	return c.Status != CancellationStatusPending
}

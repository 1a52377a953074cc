package domain

import (
	"time"

	"github.com/zapis-team/ZPS-InterviewService/pkg/types"
)

// Registration запись кандидата на собеседование.
// Инвариант: у кандидата одновременно не больше одной записи с Canceled == false.
type Registration struct {
	ID        int64
	UserID    int64
	FacultyID int64
	Date      time.Time
	Slot      types.TimeRange

	Canceled           bool
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
}

// IsActive возвращает true для действующей записи
func (r *Registration) IsActive() bool {
	return !r.Canceled
}

// Key возвращает ключ слота, на который сделана запись
func (r *Registration) Key() SlotKey {
	return SlotKey{FacultyID: r.FacultyID, Date: r.Date, Slot: r.Slot}
}

// StartAt возвращает момент начала слота записи
func (r *Registration) StartAt() (time.Time, error) {
	return r.Key().StartAt()
}

package domain

import (
	"time"

	"github.com/zapis-team/ZPS-InterviewService/pkg/types"
)

// AvailabilityMark отметка собеседующего "могу" в конкретном слоте.
// Пишется только синхронизацией с таблицей, для движка бронирования read-only.
// На вместимость слота не влияет - это справочная информация для админа.
type AvailabilityMark struct {
	ID          int64
	UserID      int64
	FacultyID   int64
	Date        time.Time
	Slot        types.TimeRange
	IsAvailable bool
}

// Key возвращает ключ слота отметки
func (m *AvailabilityMark) Key() SlotKey {
	return SlotKey{FacultyID: m.FacultyID, Date: m.Date, Slot: m.Slot}
}

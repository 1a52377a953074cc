package capacity

import (
	"context"
	"time"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	"github.com/zapis-team/ZPS-InterviewService/pkg/types"
)

// CapacityRepository интерфейс репозитория вместимости слотов
type CapacityRepository interface {
	GetRemaining(ctx context.Context, key domain.SlotKey) (int, error)
	SetTotalSeats(ctx context.Context, key domain.SlotKey, value int) error
	AdjustTotalSeats(ctx context.Context, key domain.SlotKey, delta int) (int, error)
}

// FacultyRepository интерфейс репозитория факультетов
type FacultyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Faculty, error)
}

// AvailabilityIndex интерфейс чтения отметок доступности собеседующих
type AvailabilityIndex interface {
	ListTimeSlotsWithAvailability(ctx context.Context, facultyID int64, date time.Time) ([]types.TimeRange, error)
}

// ListingCache интерфейс кеша списков свободных слотов
type ListingCache interface {
	Invalidate(ctx context.Context, facultyID int64, date time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

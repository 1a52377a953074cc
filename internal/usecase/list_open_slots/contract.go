package list_open_slots

import (
	"context"
	"time"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
)

// CapacityRepository интерфейс репозитория вместимости слотов
type CapacityRepository interface {
	ListOpenSlots(ctx context.Context, facultyID int64, date *time.Time) ([]domain.OpenSlot, error)
}

// FacultyRepository интерфейс репозитория факультетов
type FacultyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Faculty, error)
}

// ListingCache интерфейс кеша списков свободных слотов
type ListingCache interface {
	Get(ctx context.Context, facultyID int64, date *time.Time) ([]domain.OpenSlot, error)
	Set(ctx context.Context, facultyID int64, date *time.Time, slots []domain.OpenSlot) error
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package book_slot

import (
	"context"
	"time"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// FacultyRepository интерфейс репозитория факультетов
type FacultyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Faculty, error)
}

// CapacityRepository интерфейс репозитория вместимости слотов
type CapacityRepository interface {
	GetForUpdate(ctx context.Context, key domain.SlotKey) (domain.SlotSeats, error)
}

// RegistrationRepository интерфейс репозитория записей
type RegistrationRepository interface {
	FindActiveByUser(ctx context.Context, userID int64) (*domain.Registration, error)
	Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error)
}

// OutboxRepository интерфейс репозитория исходящих событий
type OutboxRepository interface {
	Insert(ctx context.Context, event *domain.OutboxEvent) error
}

// ListingCache интерфейс кеша списков свободных слотов
type ListingCache interface {
	Invalidate(ctx context.Context, facultyID int64, date time.Time) error
}

// NotifyClient интерфейс клиента шлюза уведомлений
type NotifyClient interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

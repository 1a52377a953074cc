package resolve_cancellation

import (
	"context"
	"time"

	"github.com/google/uuid"

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

// RegistrationRepository интерфейс репозитория записей
type RegistrationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// CancellationRepository интерфейс репозитория заявок на отмену
type CancellationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PendingCancellation, error)
	Resolve(ctx context.Context, id uuid.UUID, status domain.CancellationStatus) error
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

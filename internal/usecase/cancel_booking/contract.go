package cancel_booking

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

// RegistrationRepository интерфейс репозитория записей
type RegistrationRepository interface {
	FindActiveByUser(ctx context.Context, userID int64) (*domain.Registration, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// CancellationRepository интерфейс репозитория заявок на отмену
type CancellationRepository interface {
	Create(ctx context.Context, req *domain.PendingCancellation) (*domain.PendingCancellation, error)
	FindPendingByRegistration(ctx context.Context, registrationID int64) (*domain.PendingCancellation, error)
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

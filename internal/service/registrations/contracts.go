package registrations

import (
	"context"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
)

// RegistrationRepository интерфейс репозитория записей
type RegistrationRepository interface {
	FindActiveByUser(ctx context.Context, userID int64) (*domain.Registration, error)
	ListActiveByFaculty(ctx context.Context, facultyID int64) ([]*domain.Registration, error)
}

// FacultyRepository интерфейс репозитория факультетов
type FacultyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Faculty, error)
}

// AvailabilityRepository интерфейс индекса доступности собеседующих
type AvailabilityRepository interface {
	ListAvailableUsers(ctx context.Context, key domain.SlotKey) ([]int64, error)
}

// CancellationRepository интерфейс репозитория запросов на отмену
type CancellationRepository interface {
	ListPendingByFaculty(ctx context.Context, facultyID int64) ([]*domain.PendingCancellation, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

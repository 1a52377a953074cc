package faculty

import (
	"context"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
)

// FacultyRepository интерфейс репозитория факультетов
type FacultyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Faculty, error)
	List(ctx context.Context) ([]*domain.Faculty, error)
	SetLockoutHours(ctx context.Context, facultyID int64, hours int) error
	SetCancellationPolicy(ctx context.Context, facultyID int64, policy domain.CancellationPolicy) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

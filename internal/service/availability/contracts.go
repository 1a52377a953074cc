package availability

import (
	"context"
	"time"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	"github.com/zapis-team/ZPS-InterviewService/internal/integrations/sheets"
)

// SheetsClient интерфейс клиента Google Sheets
type SheetsClient interface {
	ReadRange(ctx context.Context, spreadsheetID, readRange string) (sheets.Grid, error)
	UpdateRange(ctx context.Context, spreadsheetID, writeRange string, grid sheets.Grid) error
	ListWorksheets(ctx context.Context, spreadsheetID string) ([]sheets.Worksheet, error)
	AddWorksheet(ctx context.Context, spreadsheetID, title string) (*sheets.Worksheet, error)
	SetGridValidation(ctx context.Context, spreadsheetID string, sheetID int64, startRow, endRow, startCol, endCol int64, allowed []string) error
}

// AvailabilityRepository интерфейс репозитория отметок доступности
type AvailabilityRepository interface {
	BulkReplace(ctx context.Context, userID, facultyID int64, marks []domain.AvailabilityMark) error
	ListDatesWithAvailability(ctx context.Context, facultyID int64) ([]time.Time, error)
}

// FacultyRepository интерфейс репозитория факультетов
type FacultyRepository interface {
	GetByAdminUser(ctx context.Context, adminUserID int64) (*domain.Faculty, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	ListInterviewers(ctx context.Context, facultyID int64) ([]*domain.User, error)
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

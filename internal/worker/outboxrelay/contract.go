package outboxrelay

import (
	"context"

	"github.com/google/uuid"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	"github.com/zapis-team/ZPS-InterviewService/internal/integrations/sheets"
)

// OutboxRepository интерфейс репозитория исходящих событий
type OutboxRepository interface {
	FetchUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

// FacultyRepository интерфейс репозитория факультетов
type FacultyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Faculty, error)
}

// SheetsClient интерфейс клиента Google Sheets
type SheetsClient interface {
	ListWorksheets(ctx context.Context, spreadsheetID string) ([]sheets.Worksheet, error)
	AddWorksheet(ctx context.Context, spreadsheetID, title string) (*sheets.Worksheet, error)
	AppendRow(ctx context.Context, spreadsheetID, sheetTitle string, row []string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс счётчиков воркера
type Metrics interface {
	IncOutboxPublished()
	IncOutboxFailed()
	IncSheetsRateLimited()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NopMetrics заглушка счётчиков для выключенных метрик
type NopMetrics struct{}

func (NopMetrics) IncOutboxPublished()   {}
func (NopMetrics) IncOutboxFailed()      {}
func (NopMetrics) IncSheetsRateLimited() {}

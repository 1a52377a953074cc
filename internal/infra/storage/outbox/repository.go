package outbox

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	"github.com/zapis-team/ZPS-InterviewService/pkg/dbmetrics"
	"github.com/zapis-team/ZPS-InterviewService/pkg/psqlbuilder"
)

// maxAttempts после стольких неудач событие помечается failed и
// больше не выбирается воркером
const maxAttempts = 3

// Repository репозиторий исходящих событий (transactional outbox).
// Событие пишется в той же транзакции, что и изменение данных,
// воркер публикует его асинхронно.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исходящих событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert сохраняет событие. Вызывается внутри транзакции бизнес-операции.
func (r *Repository) Insert(ctx context.Context, event *domain.OutboxEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("outbox_events").
		Columns("id", "event_type", "payload").
		Values(event.ID, event.EventType, event.Payload).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// FetchUnpublished выбирает пачку неопубликованных событий с блокировкой.
// SKIP LOCKED позволяет гонять несколько реплик воркера без дублей.
func (r *Repository) FetchUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "event_type", "payload", "attempts", "published", "created_at").
		From("outbox_events").
		Where(squirrel.Eq{"published": false, "failed": false}).
		Where(squirrel.Lt{"attempts": maxAttempts}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.OutboxEvent, 0, limit)
	for rows.Next() {
		var event domain.OutboxEvent
		err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.Payload,
			&event.Attempts,
			&event.Published,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FetchUnpublished - scan row: %w", ErrScanRow, err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - rows error: %w", ErrScanRow, err)
	}

	return events, nil
}

// MarkPublished помечает событие доставленным
func (r *Repository) MarkPublished(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("published", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPublished - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkPublished - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// MarkFailed увеличивает счётчик попыток; после maxAttempts событие
// выводится из оборота флагом failed
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("failed", squirrel.Expr("attempts + 1 >= ?", maxAttempts)).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkFailed - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

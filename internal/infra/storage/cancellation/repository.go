package cancellation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	"github.com/zapis-team/ZPS-InterviewService/pkg/dbmetrics"
	"github.com/zapis-team/ZPS-InterviewService/pkg/psqlbuilder"
)

// Repository репозиторий заявок на отмену записи.
// Заявка живёт до явного решения админа, автоматического истечения нет.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок на отмену
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var cancellationColumns = []string{
	"id",
	"registration_id",
	"user_id",
	"faculty_id",
	"reason",
	"status",
	"created_at",
	"resolved_at",
}

// Create создает заявку на отмену в статусе pending.
// Частичный уникальный индекс по registration_id не даёт завести
// вторую открытую заявку на ту же запись.
func (r *Repository) Create(ctx context.Context, req *domain.PendingCancellation) (*domain.PendingCancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.Status = domain.CancellationStatusPending

	query, args, err := psqlbuilder.Insert("pending_cancellations").
		Columns("id", "registration_id", "user_id", "faculty_id", "reason", "status").
		Values(req.ID, req.RegistrationID, req.UserID, req.FacultyID, req.Reason, req.Status).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicatePending
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return req, nil
}

// GetByID получает заявку по идентификатору
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PendingCancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cancellationColumns...).
		From("pending_cancellations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// FindPendingByRegistration возвращает открытую заявку на отмену записи
func (r *Repository) FindPendingByRegistration(ctx context.Context, registrationID int64) (*domain.PendingCancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cancellationColumns...).
		From("pending_cancellations").
		Where(squirrel.Eq{
			"registration_id": registrationID,
			"status":          domain.CancellationStatusPending,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindPendingByRegistration - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "FindPendingByRegistration")
}

// Resolve переводит открытую заявку в конечный статус.
// Уже решённую заявку тронуть нельзя, вернётся ErrCancellationNotFound.
func (r *Repository) Resolve(ctx context.Context, id uuid.UUID, status domain.CancellationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("pending_cancellations").
		Set("status", status).
		Set("resolved_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": domain.CancellationStatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCancellationNotFound
	}

	return nil
}

// ListPendingByFaculty возвращает открытые заявки факультета,
// старые первыми
func (r *Repository) ListPendingByFaculty(ctx context.Context, facultyID int64) ([]*domain.PendingCancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cancellationColumns...).
		From("pending_cancellations").
		Where(squirrel.Eq{
			"faculty_id": facultyID,
			"status":     domain.CancellationStatusPending,
		}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingByFaculty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingByFaculty - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.PendingCancellation, 0)
	for rows.Next() {
		var req domain.PendingCancellation
		err := rows.Scan(
			&req.ID,
			&req.RegistrationID,
			&req.UserID,
			&req.FacultyID,
			&req.Reason,
			&req.Status,
			&req.CreatedAt,
			&req.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPendingByFaculty - scan row: %w", ErrScanRow, err)
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPendingByFaculty - rows error: %w", ErrScanRow, err)
	}

	return requests, nil
}

func (r *Repository) scanOne(row *sql.Row, method string) (*domain.PendingCancellation, error) {
	var req domain.PendingCancellation

	err := row.Scan(
		&req.ID,
		&req.RegistrationID,
		&req.UserID,
		&req.FacultyID,
		&req.Reason,
		&req.Status,
		&req.CreatedAt,
		&req.ResolvedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCancellationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan cancellation: %w", ErrScanRow, method, err)
	}

	return &req, nil
}

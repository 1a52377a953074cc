package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	"github.com/zapis-team/ZPS-InterviewService/pkg/dbmetrics"
	"github.com/zapis-team/ZPS-InterviewService/pkg/psqlbuilder"
	"github.com/zapis-team/ZPS-InterviewService/pkg/types"
)

// Repository репозиторий записей на собеседования.
// Единственный писатель таблицы registrations - движок бронирования.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var registrationColumns = []string{
	"id",
	"user_id",
	"faculty_id",
	"slot_date",
	"time_slot",
	"canceled",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
}

// Create создает запись кандидата на слот.
// Частичный уникальный индекс по user_id страхует инвариант
// "одна активная запись на кандидата" на уровне БД.
func (r *Repository) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("registrations").
		Columns("user_id", "faculty_id", "slot_date", "time_slot").
		Values(reg.UserID, reg.FacultyID, reg.Date, reg.Slot.String()).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		// 23505 - unique_violation на частичном индексе активных записей
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateActive
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return reg, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(registrationColumns...).
		From("registrations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// FindActiveByUser возвращает активную запись кандидата (любой слот).
// Если записи нет - ErrRegistrationNotFound.
func (r *Repository) FindActiveByUser(ctx context.Context, userID int64) (*domain.Registration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(registrationColumns...).
		From("registrations").
		Where(squirrel.Eq{"user_id": userID, "canceled": false}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByUser - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "FindActiveByUser")
}

// Cancel помечает запись отменённой с указанием причины.
// Строка сохраняется для истории; вместимость слота восстанавливается
// автоматически, потому что остаток вычисляется по активным записям.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("registrations").
		Set("canceled", true).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "canceled": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

// ListActiveByFaculty возвращает активные записи факультета,
// отсортированные по дате, затем по интервалу времени
func (r *Repository) ListActiveByFaculty(ctx context.Context, facultyID int64) ([]*domain.Registration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(registrationColumns...).
		From("registrations").
		Where(squirrel.Eq{"faculty_id": facultyID, "canceled": false}).
		OrderBy("slot_date ASC", "time_slot ASC", "created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByFaculty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByFaculty - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRegistrations(rows)
}

func (r *Repository) scanOne(row *sql.Row, method string) (*domain.Registration, error) {
	var (
		reg       domain.Registration
		slotLabel string
	)

	err := row.Scan(
		&reg.ID,
		&reg.UserID,
		&reg.FacultyID,
		&reg.Date,
		&slotLabel,
		&reg.Canceled,
		&reg.CancellationReason,
		&reg.CancelledAt,
		&reg.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan registration: %w", ErrScanRow, method, err)
	}

	slot, err := types.ParseTimeRange(slotLabel)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - parse time slot %q: %w", ErrScanRow, method, slotLabel, err)
	}
	reg.Slot = slot

	return &reg, nil
}

func (r *Repository) scanRegistrations(rows *sql.Rows) ([]*domain.Registration, error) {
	registrations := make([]*domain.Registration, 0)

	for rows.Next() {
		var (
			reg       domain.Registration
			slotLabel string
		)

		err := rows.Scan(
			&reg.ID,
			&reg.UserID,
			&reg.FacultyID,
			&reg.Date,
			&slotLabel,
			&reg.Canceled,
			&reg.CancellationReason,
			&reg.CancelledAt,
			&reg.CreatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanRegistrations - scan row: %w", ErrScanRow, err)
		}

		slot, err := types.ParseTimeRange(slotLabel)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRegistrations - parse time slot %q: %w", ErrScanRow, slotLabel, err)
		}
		reg.Slot = slot

		registrations = append(registrations, &reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRegistrations - rows error: %w", ErrScanRow, err)
	}

	return registrations, nil
}

package faculty

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	"github.com/zapis-team/ZPS-InterviewService/pkg/dbmetrics"
	"github.com/zapis-team/ZPS-InterviewService/pkg/psqlbuilder"
)

// Repository репозиторий факультетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория факультетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var facultyColumns = []string{
	"id",
	"name",
	"spreadsheet_url",
	"admin_user_id",
	"lockout_hours",
	"cancellation_policy",
}

// GetByID получает факультет по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Faculty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facultyColumns...).
		From("faculties").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByAdminUser получает факультет, которым управляет указанный админ
func (r *Repository) GetByAdminUser(ctx context.Context, adminUserID int64) (*domain.Faculty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facultyColumns...).
		From("faculties").
		Where(squirrel.Eq{"admin_user_id": adminUserID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdminUser - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByAdminUser")
}

// List возвращает все факультеты, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Faculty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facultyColumns...).
		From("faculties").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	faculties := make([]*domain.Faculty, 0)
	for rows.Next() {
		var faculty domain.Faculty
		err := rows.Scan(
			&faculty.ID,
			&faculty.Name,
			&faculty.SpreadsheetURL,
			&faculty.AdminUserID,
			&faculty.LockoutHours,
			&faculty.CancellationPolicy,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		faculties = append(faculties, &faculty)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return faculties, nil
}

// SetLockoutHours устанавливает окно блокировки факультета в часах
func (r *Repository) SetLockoutHours(ctx context.Context, facultyID int64, hours int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("faculties").
		Set("lockout_hours", hours).
		Where(squirrel.Eq{"id": facultyID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetLockoutHours - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectRow(ctx, executor, query, args, "SetLockoutHours")
}

// SetCancellationPolicy устанавливает режим отмены записей факультета
func (r *Repository) SetCancellationPolicy(ctx context.Context, facultyID int64, policy domain.CancellationPolicy) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("faculties").
		Set("cancellation_policy", policy).
		Where(squirrel.Eq{"id": facultyID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCancellationPolicy - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectRow(ctx, executor, query, args, "SetCancellationPolicy")
}

func (r *Repository) execExpectRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrFacultyNotFound
	}

	return nil
}

func (r *Repository) scanOne(row *sql.Row, method string) (*domain.Faculty, error) {
	var faculty domain.Faculty

	err := row.Scan(
		&faculty.ID,
		&faculty.Name,
		&faculty.SpreadsheetURL,
		&faculty.AdminUserID,
		&faculty.LockoutHours,
		&faculty.CancellationPolicy,
	)

	if err == sql.ErrNoRows {
		return nil, ErrFacultyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan faculty: %w", ErrScanRow, method, err)
	}

	return &faculty, nil
}

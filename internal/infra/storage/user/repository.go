package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	"github.com/zapis-team/ZPS-InterviewService/pkg/dbmetrics"
	"github.com/zapis-team/ZPS-InterviewService/pkg/psqlbuilder"
)

// Repository репозиторий пользователей (кандидаты, собеседующие, админы)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var userColumns = []string{
	"id",
	"first_name",
	"last_name",
	"chat_id",
	"verification_id",
	"is_candidate",
	"is_interviewer",
	"is_faculty_admin",
	"faculty_id",
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByVerificationID получает пользователя по проверочному идентификатору,
// которым кандидат подтверждает себя при первом входе
func (r *Repository) GetByVerificationID(ctx context.Context, verificationID string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"verification_id": verificationID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByVerificationID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByVerificationID")
}

// ListInterviewers возвращает собеседующих факультета
func (r *Repository) ListInterviewers(ctx context.Context, facultyID int64) ([]*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"faculty_id": facultyID, "is_interviewer": true}).
		OrderBy("last_name ASC", "first_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListInterviewers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInterviewers - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var u domain.User
		err := rows.Scan(
			&u.ID,
			&u.FirstName,
			&u.LastName,
			&u.ChatID,
			&u.VerificationID,
			&u.IsCandidate,
			&u.IsInterviewer,
			&u.IsFacultyAdmin,
			&u.FacultyID,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListInterviewers - scan row: %w", ErrScanRow, err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInterviewers - rows error: %w", ErrScanRow, err)
	}

	return users, nil
}

func (r *Repository) scanOne(row *sql.Row, method string) (*domain.User, error) {
	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.ChatID,
		&u.VerificationID,
		&u.IsCandidate,
		&u.IsInterviewer,
		&u.IsFacultyAdmin,
		&u.FacultyID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %w", ErrScanRow, method, err)
	}

	return &u, nil
}

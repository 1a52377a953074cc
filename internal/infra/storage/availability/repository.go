package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	"github.com/zapis-team/ZPS-InterviewService/pkg/dbmetrics"
	"github.com/zapis-team/ZPS-InterviewService/pkg/psqlbuilder"
	"github.com/zapis-team/ZPS-InterviewService/pkg/types"
)

// Repository репозиторий отметок доступности собеседующих.
// Отметки заливаются синхронизацией из таблиц и заменяются целиком,
// построчные правки снаружи синка не предусмотрены.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// BulkReplace заменяет все отметки собеседующего в рамках факультета.
// Вызывается внутри транзакции синка: сначала удаление, потом вставка,
// чтобы снятые в таблице отметки не оставались в БД.
func (r *Repository) BulkReplace(ctx context.Context, userID, facultyID int64, marks []domain.AvailabilityMark) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability").
		Where(squirrel.Eq{"user_id": userID, "faculty_id": facultyID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: BulkReplace - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: BulkReplace - execute delete: %w", ErrExecQuery, err)
	}

	if len(marks) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("availability").
		Columns("user_id", "faculty_id", "slot_date", "time_slot", "is_available")

	for _, mark := range marks {
		insertBuilder = insertBuilder.Values(userID, facultyID, mark.Date, mark.Slot.String(), mark.IsAvailable)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: BulkReplace - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: BulkReplace - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// ListAvailableUsers возвращает ID собеседующих, отметивших слот доступным
func (r *Repository) ListAvailableUsers(ctx context.Context, key domain.SlotKey) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id").
		From("availability").
		Where(squirrel.Eq{
			"faculty_id":   key.FacultyID,
			"slot_date":    key.Date,
			"time_slot":    key.SlotLabel(),
			"is_available": true,
		}).
		OrderBy("user_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableUsers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableUsers - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	userIDs := make([]int64, 0)
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("%w: ListAvailableUsers - scan row: %w", ErrScanRow, err)
		}
		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailableUsers - rows error: %w", ErrScanRow, err)
	}

	return userIDs, nil
}

// ListDatesWithAvailability возвращает даты факультета, где хотя бы один
// собеседующий отметил доступность
func (r *Repository) ListDatesWithAvailability(ctx context.Context, facultyID int64) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT slot_date").
		From("availability").
		Where(squirrel.Eq{"faculty_id": facultyID, "is_available": true}).
		OrderBy("slot_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDatesWithAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDatesWithAvailability - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("%w: ListDatesWithAvailability - scan row: %w", ErrScanRow, err)
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDatesWithAvailability - rows error: %w", ErrScanRow, err)
	}

	return dates, nil
}

// ListTimeSlotsWithAvailability возвращает интервалы времени на дату,
// где есть хотя бы один доступный собеседующий.
// Интервалы с нечитаемой меткой пропускаются.
func (r *Repository) ListTimeSlotsWithAvailability(ctx context.Context, facultyID int64, date time.Time) ([]types.TimeRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT time_slot").
		From("availability").
		Where(squirrel.Eq{
			"faculty_id":   facultyID,
			"slot_date":    date,
			"is_available": true,
		}).
		OrderBy("time_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeSlotsWithAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeSlotsWithAvailability - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]types.TimeRange, 0)
	for rows.Next() {
		var slotLabel string
		if err := rows.Scan(&slotLabel); err != nil {
			return nil, fmt.Errorf("%w: ListTimeSlotsWithAvailability - scan row: %w", ErrScanRow, err)
		}

		slot, err := types.ParseTimeRange(slotLabel)
		if err != nil {
			continue
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimeSlotsWithAvailability - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

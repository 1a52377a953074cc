package slotcapacity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	"github.com/zapis-team/ZPS-InterviewService/pkg/dbmetrics"
	"github.com/zapis-team/ZPS-InterviewService/pkg/psqlbuilder"
	"github.com/zapis-team/ZPS-InterviewService/pkg/types"
)

// Repository репозиторий вместимости слотов.
// Хранит только заданный админом total_seats; остаток всегда вычисляется
// как total_seats минус число активных записей, отдельного счётчика нет.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория вместимости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// joinActiveRegistrations условие связи слота с его активными записями
const joinActiveRegistrations = "registrations r ON r.faculty_id = sc.faculty_id" +
	" AND r.slot_date = sc.slot_date AND r.time_slot = sc.time_slot AND NOT r.canceled"

// GetRemaining возвращает число свободных мест слота.
// Для слота без строки вместимости возвращает 0.
func (r *Repository) GetRemaining(ctx context.Context, key domain.SlotKey) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("sc.total_seats", "COUNT(r.id)").
		From("slot_capacity sc").
		LeftJoin(joinActiveRegistrations).
		Where(squirrel.Eq{
			"sc.faculty_id": key.FacultyID,
			"sc.slot_date":  key.Date,
			"sc.time_slot":  key.SlotLabel(),
		}).
		GroupBy("sc.total_seats").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: GetRemaining - build select query: %v", ErrBuildQuery, err)
	}

	var total, active int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&total, &active)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetRemaining - scan row: %w", ErrScanRow, err)
	}

	seats := domain.SlotSeats{Key: key, TotalSeats: total, ActiveCount: active}
	return seats.Remaining(), nil
}

// GetForUpdate возвращает вместимость слота, блокируя строку (FOR UPDATE).
// Вызывается только внутри транзакции бронирования: блокировка сериализует
// конкурирующие записи на один и тот же слот.
func (r *Repository) GetForUpdate(ctx context.Context, key domain.SlotKey) (domain.SlotSeats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("total_seats").
		From("slot_capacity").
		Where(squirrel.Eq{
			"faculty_id": key.FacultyID,
			"slot_date":  key.Date,
			"time_slot":  key.SlotLabel(),
		}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return domain.SlotSeats{}, fmt.Errorf("%w: GetForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&total)
	if err == sql.ErrNoRows {
		return domain.SlotSeats{}, ErrCapacityNotFound
	}
	if err != nil {
		return domain.SlotSeats{}, fmt.Errorf("%w: GetForUpdate - scan row: %w", ErrScanRow, err)
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("registrations").
		Where(squirrel.Eq{
			"faculty_id": key.FacultyID,
			"slot_date":  key.Date,
			"time_slot":  key.SlotLabel(),
			"canceled":   false,
		}).
		ToSql()

	if err != nil {
		return domain.SlotSeats{}, fmt.Errorf("%w: GetForUpdate - build count query: %v", ErrBuildQuery, err)
	}

	var active int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&active); err != nil {
		return domain.SlotSeats{}, fmt.Errorf("%w: GetForUpdate - scan count: %w", ErrScanRow, err)
	}

	return domain.SlotSeats{Key: key, TotalSeats: total, ActiveCount: active}, nil
}

// SetTotalSeats устанавливает точный лимит мест слота (upsert, set абсолютный)
func (r *Repository) SetTotalSeats(ctx context.Context, key domain.SlotKey, value int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_capacity").
		Columns("faculty_id", "slot_date", "time_slot", "total_seats").
		Values(key.FacultyID, key.Date, key.SlotLabel(), value).
		Suffix("ON CONFLICT (faculty_id, slot_date, time_slot) DO UPDATE SET total_seats = EXCLUDED.total_seats").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetTotalSeats - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetTotalSeats - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

// AdjustTotalSeats сдвигает лимит мест на delta атомарно, с полом в ноль.
// Возвращает новое значение лимита.
func (r *Repository) AdjustTotalSeats(ctx context.Context, key domain.SlotKey, delta int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_capacity").
		Columns("faculty_id", "slot_date", "time_slot", "total_seats").
		Values(key.FacultyID, key.Date, key.SlotLabel(), squirrel.Expr("GREATEST(?, 0)", delta)).
		Suffix(
			"ON CONFLICT (faculty_id, slot_date, time_slot)"+
				" DO UPDATE SET total_seats = GREATEST(slot_capacity.total_seats + ?, 0)"+
				" RETURNING total_seats",
			delta,
		).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: AdjustTotalSeats - build upsert query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: AdjustTotalSeats - execute upsert: %w", ErrExecQuery, err)
	}

	return total, nil
}

// ListOpenSlots возвращает слоты факультета со свободными местами,
// отсортированные по дате и интервалу. date опционально сужает выборку до одного дня.
// Слоты с нечитаемым интервалом времени пропускаются (fail closed).
func (r *Repository) ListOpenSlots(ctx context.Context, facultyID int64, date *time.Time) ([]domain.OpenSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"sc.slot_date",
		"sc.time_slot",
		"sc.total_seats",
		"COUNT(r.id)",
	).
		From("slot_capacity sc").
		LeftJoin(joinActiveRegistrations).
		Where(squirrel.Eq{"sc.faculty_id": facultyID}).
		Where(squirrel.Gt{"sc.total_seats": 0}).
		GroupBy("sc.slot_date", "sc.time_slot", "sc.total_seats").
		Having("sc.total_seats > COUNT(r.id)").
		OrderBy("sc.slot_date ASC", "sc.time_slot ASC")

	if date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"sc.slot_date": *date})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.OpenSlot, 0)
	for rows.Next() {
		var (
			slotDate  time.Time
			slotLabel string
			total     int
			active    int
		)
		if err := rows.Scan(&slotDate, &slotLabel, &total, &active); err != nil {
			return nil, fmt.Errorf("%w: ListOpenSlots - scan row: %w", ErrScanRow, err)
		}

		slot, err := types.ParseTimeRange(slotLabel)
		if err != nil {
			// Нечитаемый интервал не показываем и не бронируем
			continue
		}

		seats := domain.SlotSeats{
			Key:         domain.SlotKey{FacultyID: facultyID, Date: slotDate, Slot: slot},
			TotalSeats:  total,
			ActiveCount: active,
		}
		slots = append(slots, domain.OpenSlot{Key: seats.Key, Remaining: seats.Remaining()})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpenSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

package list_open_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	facultyRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/faculty"
)

// UseCase use case списков свободных слотов для кандидата.
// Кеш хранит сырой список из БД; фильтр окна блокировки применяется
// на каждый запрос, потому что зависит от текущего времени.
type UseCase struct {
	capacityRepo CapacityRepository
	facultyRepo  FacultyRepository
	cache        ListingCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	capacityRepo CapacityRepository,
	facultyRepo FacultyRepository,
	cache ListingCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		capacityRepo: capacityRepo,
		facultyRepo:  facultyRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Dates возвращает даты факультета со свободными местами.
// Даты, все слоты которых внутри окна блокировки, не показываются.
func (uc *UseCase) Dates(ctx context.Context, req *DatesRequest) (*DatesResponse, error) {
	if req.FacultyID <= 0 {
		return nil, fmt.Errorf("%w: facultyID must be positive", ErrInvalidInput)
	}

	faculty, slots, err := uc.loadOpenSlots(ctx, req.FacultyID, nil)
	if err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	seen := make(map[string]struct{})
	dates := make([]string, 0)

	for _, slot := range slots {
		if uc.insideLockout(slot.Key, now, faculty.EffectiveLockoutHours()) {
			continue
		}

		label := slot.Key.DateLabel()
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		dates = append(dates, label)
	}

	return &DatesResponse{FacultyID: req.FacultyID, Dates: dates}, nil
}

// TimeSlots возвращает интервалы на дату со свободными местами
func (uc *UseCase) TimeSlots(ctx context.Context, req *TimeSlotsRequest) (*TimeSlotsResponse, error) {
	if req.FacultyID <= 0 {
		return nil, fmt.Errorf("%w: facultyID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	date, err := domain.ParseDateLabel(req.DateLabel, now)
	if err != nil {
		uc.logger.Warn("ListOpenSlots: malformed date label %q: %v", req.DateLabel, err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedDate, err)
	}

	faculty, slots, err := uc.loadOpenSlots(ctx, req.FacultyID, &date)
	if err != nil {
		return nil, err
	}

	entries := make([]TimeSlotEntry, 0, len(slots))
	for _, slot := range slots {
		if uc.insideLockout(slot.Key, now, faculty.EffectiveLockoutHours()) {
			continue
		}
		entries = append(entries, TimeSlotEntry{
			SlotLabel: slot.Key.SlotLabel(),
			Remaining: slot.Remaining,
		})
	}

	return &TimeSlotsResponse{
		FacultyID: req.FacultyID,
		DateLabel: domain.FormatDateLabel(date),
		Slots:     entries,
	}, nil
}

// loadOpenSlots читает список из кеша, при промахе из БД с прогревом кеша.
// Недоступность кеша не ломает выдачу.
func (uc *UseCase) loadOpenSlots(ctx context.Context, facultyID int64, date *time.Time) (*domain.Faculty, []domain.OpenSlot, error) {
	faculty, err := uc.facultyRepo.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, facultyRepo.ErrFacultyNotFound) {
			return nil, nil, ErrFacultyNotFound
		}
		uc.logger.Error("ListOpenSlots: failed to get faculty id=%d: %v", facultyID, err)
		return nil, nil, fmt.Errorf("%w: failed to get faculty: %v", ErrInternal, err)
	}

	if slots, err := uc.cache.Get(ctx, facultyID, date); err == nil {
		return faculty, slots, nil
	}

	slots, err := uc.capacityRepo.ListOpenSlots(ctx, facultyID, date)
	if err != nil {
		uc.logger.Error("ListOpenSlots: failed to list open slots for faculty=%d: %v", facultyID, err)
		return nil, nil, fmt.Errorf("%w: failed to list open slots: %v", ErrInternal, err)
	}

	if err := uc.cache.Set(ctx, facultyID, date, slots); err != nil {
		uc.logger.Warn("ListOpenSlots: failed to populate listing cache: %v", err)
	}

	return faculty, slots, nil
}

// insideLockout проверяет, что слот нельзя забронировать по времени.
// Слот с нечитаемым интервалом считается закрытым.
func (uc *UseCase) insideLockout(key domain.SlotKey, now time.Time, lockoutHours int) bool {
	start, err := key.StartAt()
	if err != nil {
		return true
	}
	return domain.IsWithinLockout(now, start, lockoutHours)
}

package capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	facultyRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/faculty"
)

// Service сервис управления вместимостью слотов.
// Все операции доступны только админу факультета.
type Service struct {
	capacityRepo      CapacityRepository
	facultyRepo       FacultyRepository
	availabilityIndex AvailabilityIndex
	cache             ListingCache
	timeProvider      TimeProvider
	logger            Logger
}

// NewService создает новый экземпляр сервиса вместимости
func NewService(
	capacityRepo CapacityRepository,
	facultyRepo FacultyRepository,
	availabilityIndex AvailabilityIndex,
	cache ListingCache,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		capacityRepo:      capacityRepo,
		facultyRepo:       facultyRepo,
		availabilityIndex: availabilityIndex,
		cache:             cache,
		timeProvider:      timeProvider,
		logger:            logger,
	}
}

// SetSeats устанавливает точный лимит мест слота.
// Установка абсолютная: повторный вызов с тем же значением ничего не меняет.
func (s *Service) SetSeats(ctx context.Context, req *SetSeatsRequest) (*SeatsResponse, error) {
	s.logger.Info("SetSeats: faculty=%d date=%s slot=%s seats=%d by user=%d",
		req.FacultyID, req.DateLabel, req.SlotLabel, req.Seats, req.AdminUserID)

	if req.Seats < domain.MinSeatsPerSlot || req.Seats > domain.MaxSeatsPerSlot {
		return nil, fmt.Errorf("%w: seats=%d, allowed range %d..%d",
			ErrInvalidSeats, req.Seats, domain.MinSeatsPerSlot, domain.MaxSeatsPerSlot)
	}

	key, err := s.authorizeAndParse(ctx, req.AdminUserID, req.FacultyID, req.DateLabel, req.SlotLabel)
	if err != nil {
		return nil, err
	}

	if err := s.capacityRepo.SetTotalSeats(ctx, key, req.Seats); err != nil {
		s.logger.Error("SetSeats: repository error for faculty=%d: %v", req.FacultyID, err)
		return nil, fmt.Errorf("%w: SetSeats - repository error: %v", ErrInternal, err)
	}

	s.invalidateListing(ctx, key)
	if req.Seats > 0 {
		s.warnIfNoInterviewers(ctx, key)
	}

	remaining, err := s.capacityRepo.GetRemaining(ctx, key)
	if err != nil {
		s.logger.Error("SetSeats: failed to read remaining for faculty=%d: %v", req.FacultyID, err)
		return nil, fmt.Errorf("%w: SetSeats - repository error: %v", ErrInternal, err)
	}

	return &SeatsResponse{TotalSeats: req.Seats, Remaining: remaining}, nil
}

// AdjustSeats сдвигает лимит мест слота на дельту (плюс или минус).
// Лимит не опускается ниже нуля; уже сделанные записи не трогаются.
func (s *Service) AdjustSeats(ctx context.Context, req *AdjustSeatsRequest) (*SeatsResponse, error) {
	s.logger.Info("AdjustSeats: faculty=%d date=%s slot=%s delta=%d by user=%d",
		req.FacultyID, req.DateLabel, req.SlotLabel, req.Delta, req.AdminUserID)

	key, err := s.authorizeAndParse(ctx, req.AdminUserID, req.FacultyID, req.DateLabel, req.SlotLabel)
	if err != nil {
		return nil, err
	}

	total, err := s.capacityRepo.AdjustTotalSeats(ctx, key, req.Delta)
	if err != nil {
		s.logger.Error("AdjustSeats: repository error for faculty=%d: %v", req.FacultyID, err)
		return nil, fmt.Errorf("%w: AdjustSeats - repository error: %v", ErrInternal, err)
	}

	s.invalidateListing(ctx, key)
	if total > 0 {
		s.warnIfNoInterviewers(ctx, key)
	}

	remaining, err := s.capacityRepo.GetRemaining(ctx, key)
	if err != nil {
		s.logger.Error("AdjustSeats: failed to read remaining for faculty=%d: %v", req.FacultyID, err)
		return nil, fmt.Errorf("%w: AdjustSeats - repository error: %v", ErrInternal, err)
	}

	return &SeatsResponse{TotalSeats: total, Remaining: remaining}, nil
}

func (s *Service) authorizeAndParse(ctx context.Context, adminUserID, facultyID int64, dateLabel, slotLabel string) (domain.SlotKey, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, facultyRepo.ErrFacultyNotFound) {
			return domain.SlotKey{}, ErrFacultyNotFound
		}
		return domain.SlotKey{}, fmt.Errorf("%w: failed to fetch faculty: %v", ErrInternal, err)
	}

	if !faculty.IsAdministeredBy(adminUserID) {
		s.logger.Warn("capacity: user=%d is not admin of faculty=%d", adminUserID, facultyID)
		return domain.SlotKey{}, ErrNotAuthorized
	}

	key, err := domain.ParseSlotKey(facultyID, dateLabel, slotLabel, s.timeProvider.Now())
	if err != nil {
		return domain.SlotKey{}, fmt.Errorf("%w: %v", ErrMalformedSlot, err)
	}

	return key, nil
}

// warnIfNoInterviewers предупреждает в логе, когда админ открывает места
// на слот, который ни один собеседующий не отметил доступным.
func (s *Service) warnIfNoInterviewers(ctx context.Context, key domain.SlotKey) {
	slots, err := s.availabilityIndex.ListTimeSlotsWithAvailability(ctx, key.FacultyID, key.Date)
	if err != nil {
		s.logger.Warn("capacity: failed to check interviewer availability for faculty=%d: %v", key.FacultyID, err)
		return
	}

	for _, slot := range slots {
		if slot.String() == key.Slot.String() {
			return
		}
	}

	s.logger.Warn("capacity: no interviewer is available for %s %s of faculty=%d",
		key.DateLabel(), key.SlotLabel(), key.FacultyID)
}

// invalidateListing сбрасывает кеш списков. Ошибка кеша не ломает операцию.
func (s *Service) invalidateListing(ctx context.Context, key domain.SlotKey) {
	if err := s.cache.Invalidate(ctx, key.FacultyID, key.Date); err != nil {
		s.logger.Warn("capacity: failed to invalidate listing cache for faculty=%d: %v", key.FacultyID, err)
	}
}

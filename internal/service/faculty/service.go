package faculty

import (
	"context"
	"errors"
	"fmt"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	facultyRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/faculty"
)

// Service сервис настроек факультета
type Service struct {
	facultyRepo FacultyRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса факультетов
func NewService(facultyRepo FacultyRepository, logger Logger) *Service {
	return &Service{
		facultyRepo: facultyRepo,
		logger:      logger,
	}
}

// ListFaculties возвращает все факультеты, отсортированные по имени
func (s *Service) ListFaculties(ctx context.Context) (*ListResponse, error) {
	faculties, err := s.facultyRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListFaculties: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListFaculties - repository error: %v", ErrInternal, err)
	}

	entries := make([]FacultyEntry, 0, len(faculties))
	for _, faculty := range faculties {
		entries = append(entries, FacultyEntry{ID: faculty.ID, Name: faculty.Name})
	}

	return &ListResponse{Faculties: entries}, nil
}

// SetLockoutHours устанавливает окно блокировки факультета.
// Окно действует одинаково на запись и отмену: операции ближе
// к началу слота, чем окно, отклоняются. Ноль отключает окно.
func (s *Service) SetLockoutHours(ctx context.Context, adminUserID, facultyID int64, hours int) error {
	s.logger.Info("SetLockoutHours: faculty=%d hours=%d by user=%d", facultyID, hours, adminUserID)

	if hours < domain.MinLockoutHours || hours > domain.MaxLockoutHours {
		return fmt.Errorf("%w: hours=%d, allowed range %d..%d",
			ErrInvalidLockout, hours, domain.MinLockoutHours, domain.MaxLockoutHours)
	}

	if err := s.authorize(ctx, adminUserID, facultyID); err != nil {
		return err
	}

	if err := s.facultyRepo.SetLockoutHours(ctx, facultyID, hours); err != nil {
		s.logger.Error("SetLockoutHours: repository error for faculty=%d: %v", facultyID, err)
		return fmt.Errorf("%w: SetLockoutHours - repository error: %v", ErrInternal, err)
	}

	return nil
}

// SetCancellationPolicy устанавливает режим отмены записей факультета
func (s *Service) SetCancellationPolicy(ctx context.Context, adminUserID, facultyID int64, policy string) error {
	s.logger.Info("SetCancellationPolicy: faculty=%d policy=%s by user=%d", facultyID, policy, adminUserID)

	domainPolicy := domain.CancellationPolicy(policy)
	if !domainPolicy.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPolicy, policy)
	}

	if err := s.authorize(ctx, adminUserID, facultyID); err != nil {
		return err
	}

	if err := s.facultyRepo.SetCancellationPolicy(ctx, facultyID, domainPolicy); err != nil {
		s.logger.Error("SetCancellationPolicy: repository error for faculty=%d: %v", facultyID, err)
		return fmt.Errorf("%w: SetCancellationPolicy - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) authorize(ctx context.Context, adminUserID, facultyID int64) error {
	faculty, err := s.facultyRepo.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, facultyRepo.ErrFacultyNotFound) {
			return ErrFacultyNotFound
		}
		return fmt.Errorf("%w: failed to fetch faculty: %v", ErrInternal, err)
	}

	if !faculty.IsAdministeredBy(adminUserID) {
		s.logger.Warn("faculty: user=%d is not admin of faculty=%d", adminUserID, facultyID)
		return ErrNotAuthorized
	}

	return nil
}

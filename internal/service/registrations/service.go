package registrations

import (
	"context"
	"errors"
	"fmt"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	facultyRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/faculty"
	registrationRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/registration"
	userRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/user"
)

// Service сервис чтения записей: текущая запись кандидата и отчёт админа
type Service struct {
	registrationRepo RegistrationRepository
	facultyRepo      FacultyRepository
	availabilityRepo AvailabilityRepository
	cancellationRepo CancellationRepository
	userRepo         UserRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	registrationRepo RegistrationRepository,
	facultyRepo FacultyRepository,
	availabilityRepo AvailabilityRepository,
	cancellationRepo CancellationRepository,
	userRepo UserRepository,
	logger Logger,
) *Service {
	return &Service{
		registrationRepo: registrationRepo,
		facultyRepo:      facultyRepo,
		availabilityRepo: availabilityRepo,
		cancellationRepo: cancellationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// GetCurrentBooking возвращает активную запись кандидата
func (s *Service) GetCurrentBooking(ctx context.Context, userID int64) (*BookingResponse, error) {
	s.logger.Info("GetCurrentBooking: fetching active registration for user=%d", userID)

	reg, err := s.registrationRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, registrationRepo.ErrRegistrationNotFound) {
			return nil, ErrNoActiveBooking
		}
		s.logger.Error("GetCurrentBooking: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetCurrentBooking - repository error: %v", ErrInternal, err)
	}

	return fromDomainRegistration(reg), nil
}

// GetFacultyReport возвращает активные записи факультета,
// сгруппированные по дате и интервалу. Доступно только админу.
func (s *Service) GetFacultyReport(ctx context.Context, adminUserID, facultyID int64) (*ReportResponse, error) {
	s.logger.Info("GetFacultyReport: faculty=%d by user=%d", facultyID, adminUserID)

	faculty, err := s.facultyRepo.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, facultyRepo.ErrFacultyNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch faculty: %v", ErrInternal, err)
	}

	if !faculty.IsAdministeredBy(adminUserID) {
		s.logger.Warn("GetFacultyReport: user=%d is not admin of faculty=%d", adminUserID, facultyID)
		return nil, ErrNotAuthorized
	}

	regs, err := s.registrationRepo.ListActiveByFaculty(ctx, facultyID)
	if err != nil {
		s.logger.Error("GetFacultyReport: repository error for faculty=%d: %v", facultyID, err)
		return nil, fmt.Errorf("%w: GetFacultyReport - repository error: %v", ErrInternal, err)
	}

	entries := make([]ReportEntry, 0, len(regs))
	for _, reg := range regs {
		name := fmt.Sprintf("user %d", reg.UserID)
		candidate, err := s.userRepo.GetByID(ctx, reg.UserID)
		if err != nil {
			// Отчёт не падает из-за одного нечитаемого кандидата
			if !errors.Is(err, userRepo.ErrUserNotFound) {
				s.logger.Warn("GetFacultyReport: failed to fetch user=%d: %v", reg.UserID, err)
			}
		} else {
			name = candidate.FullName()
		}

		key := reg.Key()
		entries = append(entries, ReportEntry{
			DateLabel:     key.DateLabel(),
			SlotLabel:     key.SlotLabel(),
			CandidateName: name,
			Interviewers:  s.availableInterviewers(ctx, key),
		})
	}

	return &ReportResponse{
		FacultyID:       facultyID,
		Entries:         entries,
		PendingRequests: s.pendingRequests(ctx, facultyID),
	}, nil
}

// pendingRequests возвращает нерешённые запросы на отмену факультета.
// Ошибка репозитория не валит отчёт, секция выходит пустой.
func (s *Service) pendingRequests(ctx context.Context, facultyID int64) []PendingRequestEntry {
	requests, err := s.cancellationRepo.ListPendingByFaculty(ctx, facultyID)
	if err != nil {
		s.logger.Warn("GetFacultyReport: failed to list pending cancellations for faculty=%d: %v", facultyID, err)
		return nil
	}

	entries := make([]PendingRequestEntry, 0, len(requests))
	for _, req := range requests {
		name := fmt.Sprintf("user %d", req.UserID)
		if candidate, err := s.userRepo.GetByID(ctx, req.UserID); err == nil {
			name = candidate.FullName()
		}
		entries = append(entries, PendingRequestEntry{
			RequestID:      req.ID.String(),
			RegistrationID: req.RegistrationID,
			CandidateName:  name,
			Reason:         req.Reason,
		})
	}

	if len(entries) == 0 {
		return nil
	}
	return entries
}

// availableInterviewers возвращает имена собеседующих, отметивших слот
// доступным. Ошибки индекса не валят отчёт, строка выходит без имён.
func (s *Service) availableInterviewers(ctx context.Context, key domain.SlotKey) []string {
	ids, err := s.availabilityRepo.ListAvailableUsers(ctx, key)
	if err != nil {
		s.logger.Warn("GetFacultyReport: failed to list interviewers for %s %s: %v",
			key.DateLabel(), key.SlotLabel(), err)
		return nil
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		interviewer, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			continue
		}
		names = append(names, interviewer.FullName())
	}

	if len(names) == 0 {
		return nil
	}
	return names
}

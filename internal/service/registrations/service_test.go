package registrations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	facultyRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/faculty"
	registrationRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/registration"
	userRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/user"
	"github.com/zapis-team/ZPS-InterviewService/pkg/ptr"
	"github.com/zapis-team/ZPS-InterviewService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRegistrationRepo struct {
	active  *domain.Registration
	byFac   []*domain.Registration
	findErr error
}

func (f *fakeRegistrationRepo) FindActiveByUser(_ context.Context, _ int64) (*domain.Registration, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.active, nil
}

func (f *fakeRegistrationRepo) ListActiveByFaculty(_ context.Context, _ int64) ([]*domain.Registration, error) {
	return f.byFac, nil
}

type fakeFacultyRepo struct {
	faculty *domain.Faculty
	err     error
}

func (f *fakeFacultyRepo) GetByID(_ context.Context, _ int64) (*domain.Faculty, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.faculty, nil
}

type fakeAvailabilityRepo struct {
	available map[string][]int64
}

func (f *fakeAvailabilityRepo) ListAvailableUsers(_ context.Context, key domain.SlotKey) ([]int64, error) {
	return f.available[key.DateLabel()+" "+key.SlotLabel()], nil
}

type fakeCancellationRepo struct {
	pending []*domain.PendingCancellation
}

func (f *fakeCancellationRepo) ListPendingByFaculty(_ context.Context, _ int64) ([]*domain.PendingCancellation, error) {
	return f.pending, nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return user, nil
}

func mustRegistration(t *testing.T, id, userID int64) *domain.Registration {
	t.Helper()
	slot, err := types.ParseTimeRange("10:00 - 11:00")
	require.NoError(t, err)
	return &domain.Registration{
		ID:        id,
		UserID:    userID,
		FacultyID: 1,
		Date:      time.Date(2025, 9, 26, 0, 0, 0, 0, time.UTC),
		Slot:      slot,
	}
}

type fixture struct {
	regs          *fakeRegistrationRepo
	faculty       *fakeFacultyRepo
	availability  *fakeAvailabilityRepo
	cancellations *fakeCancellationRepo
	users         *fakeUserRepo
	svc           *Service
}

func newFixture() *fixture {
	f := &fixture{
		regs: &fakeRegistrationRepo{},
		faculty: &fakeFacultyRepo{faculty: &domain.Faculty{
			ID:          1,
			AdminUserID: ptr.Ptr(int64(99)),
		}},
		availability:  &fakeAvailabilityRepo{},
		cancellations: &fakeCancellationRepo{},
		users: &fakeUserRepo{users: map[int64]*domain.User{
			10: {ID: 10, FirstName: "Иван", LastName: "Петров", IsCandidate: true},
			42: {ID: 42, FirstName: "Олег", LastName: "Сидоров", IsInterviewer: true},
		}},
	}

	f.svc = NewService(f.regs, f.faculty, f.availability, f.cancellations, f.users, nopLogger{})
	return f
}

func TestGetCurrentBooking(t *testing.T) {
	f := newFixture()
	f.regs.active = mustRegistration(t, 5, 10)

	resp, err := f.svc.GetCurrentBooking(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.RegistrationID)
	assert.Equal(t, int64(1), resp.FacultyID)
	assert.Equal(t, "26.09(пт)", resp.DateLabel)
	assert.Equal(t, "10:00 - 11:00", resp.SlotLabel)
}

func TestGetCurrentBookingNone(t *testing.T) {
	f := newFixture()
	f.regs.findErr = registrationRepo.ErrRegistrationNotFound

	_, err := f.svc.GetCurrentBooking(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNoActiveBooking)
}

func TestGetFacultyReport(t *testing.T) {
	f := newFixture()
	f.regs.byFac = []*domain.Registration{
		mustRegistration(t, 5, 10),
		mustRegistration(t, 6, 77),
	}
	f.availability.available = map[string][]int64{
		"26.09(пт) 10:00 - 11:00": {42},
	}

	resp, err := f.svc.GetFacultyReport(context.Background(), 99, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.FacultyID)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, ReportEntry{
		DateLabel:     "26.09(пт)",
		SlotLabel:     "10:00 - 11:00",
		CandidateName: "Иван Петров",
		Interviewers:  []string{"Олег Сидоров"},
	}, resp.Entries[0])

	// Нечитаемый кандидат не валит отчёт, имя подменяется заглушкой
	assert.Equal(t, "user 77", resp.Entries[1].CandidateName)
}

func TestGetFacultyReportPendingRequests(t *testing.T) {
	f := newFixture()
	requestID := uuid.New()
	f.cancellations.pending = []*domain.PendingCancellation{{
		ID:             requestID,
		RegistrationID: 5,
		UserID:         10,
		FacultyID:      1,
		Reason:         "заболел",
		Status:         domain.CancellationStatusPending,
	}}

	resp, err := f.svc.GetFacultyReport(context.Background(), 99, 1)
	require.NoError(t, err)

	require.Len(t, resp.PendingRequests, 1)
	assert.Equal(t, PendingRequestEntry{
		RequestID:      requestID.String(),
		RegistrationID: 5,
		CandidateName:  "Иван Петров",
		Reason:         "заболел",
	}, resp.PendingRequests[0])
}

func TestGetFacultyReportNotAuthorized(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetFacultyReport(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestGetFacultyReportFacultyNotFound(t *testing.T) {
	f := newFixture()
	f.faculty.err = facultyRepo.ErrFacultyNotFound

	_, err := f.svc.GetFacultyReport(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrFacultyNotFound)
}

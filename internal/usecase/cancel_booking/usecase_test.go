package cancel_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	cancellationRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/cancellation"
	registrationRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/registration"
	userRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/user"
	"github.com/zapis-team/ZPS-InterviewService/pkg/ptr"
	"github.com/zapis-team/ZPS-InterviewService/pkg/types"
)

var testNow = time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type fakeFacultyRepo struct {
	faculty *domain.Faculty
}

func (f *fakeFacultyRepo) GetByID(_ context.Context, _ int64) (*domain.Faculty, error) {
	return f.faculty, nil
}

type fakeRegistrationRepo struct {
	active       *domain.Registration
	cancelledIDs []int64
	reasons      []string
}

func (f *fakeRegistrationRepo) FindActiveByUser(_ context.Context, _ int64) (*domain.Registration, error) {
	if f.active == nil {
		return nil, registrationRepo.ErrRegistrationNotFound
	}
	return f.active, nil
}

func (f *fakeRegistrationRepo) Cancel(_ context.Context, id int64, reason string) error {
	f.cancelledIDs = append(f.cancelledIDs, id)
	f.reasons = append(f.reasons, reason)
	return nil
}

type fakeCancellationRepo struct {
	created   *domain.PendingCancellation
	createErr error
}

func (f *fakeCancellationRepo) Create(_ context.Context, req *domain.PendingCancellation) (*domain.PendingCancellation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *req
	created.ID = uuid.New()
	created.Status = domain.CancellationStatusPending
	created.CreatedAt = testNow
	f.created = &created
	return &created, nil
}

func (f *fakeCancellationRepo) FindPendingByRegistration(_ context.Context, _ int64) (*domain.PendingCancellation, error) {
	if f.created == nil {
		return nil, cancellationRepo.ErrCancellationNotFound
	}
	return f.created, nil
}

type fakeOutboxRepo struct {
	events []*domain.OutboxEvent
}

func (f *fakeOutboxRepo) Insert(_ context.Context, event *domain.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fakeCache struct {
	invalidations int
}

func (f *fakeCache) Invalidate(_ context.Context, _ int64, _ time.Time) error {
	f.invalidations++
	return nil
}

type fakeNotify struct {
	texts []string
}

func (f *fakeNotify) SendMessage(_ context.Context, _, text string) error {
	f.texts = append(f.texts, text)
	return nil
}

type fixture struct {
	users         *fakeUserRepo
	faculty       *fakeFacultyRepo
	regs          *fakeRegistrationRepo
	cancellations *fakeCancellationRepo
	outbox        *fakeOutboxRepo
	cache         *fakeCache
	notify        *fakeNotify
	uc            *UseCase
}

func newFixture(policy domain.CancellationPolicy) *fixture {
	slot, _ := types.ParseTimeRange("10:00 - 11:00")

	f := &fixture{
		users: &fakeUserRepo{users: map[int64]*domain.User{
			10: {ID: 10, FirstName: "Иван", LastName: "Петров", IsCandidate: true},
			99: {ID: 99, FirstName: "Анна", LastName: "Смирнова", IsFacultyAdmin: true, ChatID: ptr.Ptr("chat-99")},
		}},
		faculty: &fakeFacultyRepo{faculty: &domain.Faculty{
			ID:                 1,
			AdminUserID:        ptr.Ptr(int64(99)),
			LockoutHours:       4,
			CancellationPolicy: policy,
		}},
		regs: &fakeRegistrationRepo{active: &domain.Registration{
			ID:        5,
			UserID:    10,
			FacultyID: 1,
			Date:      time.Date(2025, 9, 26, 0, 0, 0, 0, time.UTC),
			Slot:      slot,
		}},
		cancellations: &fakeCancellationRepo{},
		outbox:        &fakeOutboxRepo{},
		cache:         &fakeCache{},
		notify:        &fakeNotify{},
	}

	f.uc = NewUseCase(
		f.users, f.faculty, f.regs, f.cancellations, f.outbox,
		f.cache, f.notify, fakeTxManager{}, nopLogger{},
	).WithTimeProvider(fixedClock{now: testNow})

	return f
}

func TestCancelBookingDirect(t *testing.T) {
	f := newFixture(domain.CancellationDirect)

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: 10, Reason: "заболел"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeCancelled, resp.Outcome)
	assert.Equal(t, int64(5), resp.RegistrationID)
	assert.Nil(t, resp.RequestID)

	require.Len(t, f.regs.cancelledIDs, 1)
	assert.Equal(t, int64(5), f.regs.cancelledIDs[0])
	assert.Equal(t, "заболел", f.regs.reasons[0])

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, domain.EventRegistrationMirror, f.outbox.events[0].EventType)
	assert.Equal(t, 1, f.cache.invalidations)
	require.Len(t, f.notify.texts, 1)
	assert.Contains(t, f.notify.texts[0], "заболел")
}

func TestCancelBookingApprovalCreatesRequest(t *testing.T) {
	f := newFixture(domain.CancellationApproval)

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: 10, Reason: "заболел"})
	require.NoError(t, err)

	assert.Equal(t, OutcomePending, resp.Outcome)
	require.NotNil(t, resp.RequestID)

	// Запись остаётся активной и держит место
	assert.Empty(t, f.regs.cancelledIDs)
	assert.Empty(t, f.outbox.events)
	assert.Equal(t, 0, f.cache.invalidations)

	require.NotNil(t, f.cancellations.created)
	assert.Equal(t, int64(5), f.cancellations.created.RegistrationID)
	assert.Equal(t, domain.CancellationStatusPending, f.cancellations.created.Status)

	require.Len(t, f.notify.texts, 1)
	assert.Contains(t, f.notify.texts[0], "Заявка на отмену")
}

func TestCancelBookingDuplicatePendingRequest(t *testing.T) {
	f := newFixture(domain.CancellationApproval)
	f.cancellations.createErr = cancellationRepo.ErrDuplicatePending

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, Reason: "передумал"})
	assert.ErrorIs(t, err, ErrCancellationPending)
}

func TestCancelBookingNoActiveRegistration(t *testing.T) {
	f := newFixture(domain.CancellationDirect)
	f.regs.active = nil

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, Reason: "передумал"})
	assert.ErrorIs(t, err, ErrNoActiveBooking)
}

func TestCancelBookingLockedOut(t *testing.T) {
	f := newFixture(domain.CancellationDirect)
	// До начала слота 2 часа при окне в 4
	f.uc.WithTimeProvider(fixedClock{now: time.Date(2025, 9, 26, 8, 0, 0, 0, time.UTC)})

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, Reason: "передумал"})
	assert.ErrorIs(t, err, ErrLockedOut)
	assert.Empty(t, f.regs.cancelledIDs)
}

func TestCancelBookingZeroLockoutCancelsUntilStart(t *testing.T) {
	f := newFixture(domain.CancellationDirect)
	// Админ отключил окно: отмена открыта за минуту до начала слота
	f.faculty.faculty.LockoutHours = 0
	f.uc.WithTimeProvider(fixedClock{now: time.Date(2025, 9, 26, 9, 59, 0, 0, time.UTC)})

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, Reason: "передумал"})
	assert.NoError(t, err)
	require.Len(t, f.regs.cancelledIDs, 1)
}

func TestCancelBookingValidation(t *testing.T) {
	f := newFixture(domain.CancellationDirect)

	for _, req := range []*Request{
		{UserID: 0, Reason: "передумал"},
		{UserID: 10, Reason: "   "},
		{UserID: 10, Reason: strings.Repeat("а", domain.MaxCancellationReasonLength+1)},
	} {
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

package resolve_cancellation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	userRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/user"
	"github.com/zapis-team/ZPS-InterviewService/pkg/ptr"
	"github.com/zapis-team/ZPS-InterviewService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

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
	reg          *domain.Registration
	cancelledIDs []int64
}

func (f *fakeRegistrationRepo) GetByID(_ context.Context, _ int64) (*domain.Registration, error) {
	return f.reg, nil
}

func (f *fakeRegistrationRepo) Cancel(_ context.Context, id int64, _ string) error {
	f.cancelledIDs = append(f.cancelledIDs, id)
	return nil
}

type fakeCancellationRepo struct {
	pending  *domain.PendingCancellation
	resolved []domain.CancellationStatus
}

func (f *fakeCancellationRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.PendingCancellation, error) {
	return f.pending, nil
}

func (f *fakeCancellationRepo) Resolve(_ context.Context, _ uuid.UUID, status domain.CancellationStatus) error {
	f.resolved = append(f.resolved, status)
	return nil
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
	chatIDs []string
	texts   []string
}

func (f *fakeNotify) SendMessage(_ context.Context, chatID, text string) error {
	f.chatIDs = append(f.chatIDs, chatID)
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
	requestID     uuid.UUID
}

func newFixture() *fixture {
	slot, _ := types.ParseTimeRange("10:00 - 11:00")
	requestID := uuid.New()

	f := &fixture{
		users: &fakeUserRepo{users: map[int64]*domain.User{
			10: {ID: 10, FirstName: "Иван", LastName: "Петров", IsCandidate: true, ChatID: ptr.Ptr("chat-10")},
			99: {ID: 99, FirstName: "Анна", LastName: "Смирнова", IsFacultyAdmin: true},
		}},
		faculty: &fakeFacultyRepo{faculty: &domain.Faculty{
			ID:          1,
			AdminUserID: ptr.Ptr(int64(99)),
		}},
		regs: &fakeRegistrationRepo{reg: &domain.Registration{
			ID:        5,
			UserID:    10,
			FacultyID: 1,
			Date:      time.Date(2025, 9, 26, 0, 0, 0, 0, time.UTC),
			Slot:      slot,
		}},
		cancellations: &fakeCancellationRepo{pending: &domain.PendingCancellation{
			ID:             requestID,
			RegistrationID: 5,
			UserID:         10,
			FacultyID:      1,
			Reason:         "заболел",
			Status:         domain.CancellationStatusPending,
		}},
		outbox:    &fakeOutboxRepo{},
		cache:     &fakeCache{},
		notify:    &fakeNotify{},
		requestID: requestID,
	}

	f.uc = NewUseCase(
		f.users, f.faculty, f.regs, f.cancellations, f.outbox,
		f.cache, f.notify, fakeTxManager{}, nopLogger{},
	)

	return f
}

func TestResolveCancellationApprove(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		AdminUserID: 99,
		RequestID:   f.requestID,
		Approve:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.CancellationStatusApproved), resp.Status)
	assert.Equal(t, int64(5), resp.RegistrationID)

	require.Len(t, f.cancellations.resolved, 1)
	assert.Equal(t, domain.CancellationStatusApproved, f.cancellations.resolved[0])

	require.Len(t, f.regs.cancelledIDs, 1)
	assert.Equal(t, int64(5), f.regs.cancelledIDs[0])

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, 1, f.cache.invalidations)

	require.Len(t, f.notify.chatIDs, 1)
	assert.Equal(t, "chat-10", f.notify.chatIDs[0])
	assert.Contains(t, f.notify.texts[0], "отменена")
}

func TestResolveCancellationReject(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		AdminUserID: 99,
		RequestID:   f.requestID,
		Approve:     false,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.CancellationStatusRejected), resp.Status)

	require.Len(t, f.cancellations.resolved, 1)
	assert.Equal(t, domain.CancellationStatusRejected, f.cancellations.resolved[0])

	// Запись не тронута, место не освобождается
	assert.Empty(t, f.regs.cancelledIDs)
	assert.Empty(t, f.outbox.events)
	assert.Equal(t, 0, f.cache.invalidations)

	require.Len(t, f.notify.texts, 1)
	assert.Contains(t, f.notify.texts[0], "отклонена")
}

func TestResolveCancellationApproveAlreadyCancelledRegistration(t *testing.T) {
	f := newFixture()
	f.regs.reg.Canceled = true

	resp, err := f.uc.Execute(context.Background(), &Request{
		AdminUserID: 99,
		RequestID:   f.requestID,
		Approve:     true,
	})
	require.NoError(t, err)

	// Заявка закрыта, но повторной отмены и зеркалирования нет
	assert.Equal(t, string(domain.CancellationStatusApproved), resp.Status)
	assert.Empty(t, f.regs.cancelledIDs)
	assert.Empty(t, f.outbox.events)
}

func TestResolveCancellationAlreadyResolved(t *testing.T) {
	f := newFixture()
	f.cancellations.pending.Status = domain.CancellationStatusRejected

	_, err := f.uc.Execute(context.Background(), &Request{
		AdminUserID: 99,
		RequestID:   f.requestID,
		Approve:     true,
	})
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestResolveCancellationNotAuthorized(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		AdminUserID: 10,
		RequestID:   f.requestID,
		Approve:     true,
	})
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Empty(t, f.cancellations.resolved)
}

func TestResolveCancellationValidation(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{AdminUserID: 0, RequestID: f.requestID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{AdminUserID: 99, RequestID: uuid.Nil})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package book_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	registrationRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/registration"
	capacityRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/slotcapacity"
	userRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/user"
	"github.com/zapis-team/ZPS-InterviewService/pkg/ptr"
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

type fakeCapacityRepo struct {
	seats domain.SlotSeats
	err   error
}

func (f *fakeCapacityRepo) GetForUpdate(_ context.Context, key domain.SlotKey) (domain.SlotSeats, error) {
	if f.err != nil {
		return domain.SlotSeats{}, f.err
	}
	seats := f.seats
	seats.Key = key
	return seats, nil
}

type fakeRegistrationRepo struct {
	active    *domain.Registration
	created   *domain.Registration
	createErr error
	nextID    int64
}

func (f *fakeRegistrationRepo) FindActiveByUser(_ context.Context, _ int64) (*domain.Registration, error) {
	if f.active == nil {
		return nil, registrationRepo.ErrRegistrationNotFound
	}
	return f.active, nil
}

func (f *fakeRegistrationRepo) Create(_ context.Context, reg *domain.Registration) (*domain.Registration, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	created := *reg
	created.ID = f.nextID
	created.CreatedAt = testNow
	f.created = &created
	return &created, nil
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
	users    *fakeUserRepo
	faculty  *fakeFacultyRepo
	capacity *fakeCapacityRepo
	regs     *fakeRegistrationRepo
	outbox   *fakeOutboxRepo
	cache    *fakeCache
	notify   *fakeNotify
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		users: &fakeUserRepo{users: map[int64]*domain.User{
			10: {ID: 10, FirstName: "Иван", LastName: "Петров", IsCandidate: true, FacultyID: ptr.Ptr(int64(1))},
			99: {ID: 99, FirstName: "Анна", LastName: "Смирнова", IsFacultyAdmin: true, ChatID: ptr.Ptr("chat-99")},
		}},
		faculty: &fakeFacultyRepo{faculty: &domain.Faculty{
			ID:           1,
			Name:         "SRE",
			AdminUserID:  ptr.Ptr(int64(99)),
			LockoutHours: 4,
		}},
		capacity: &fakeCapacityRepo{seats: domain.SlotSeats{TotalSeats: 2, ActiveCount: 0}},
		regs:     &fakeRegistrationRepo{},
		outbox:   &fakeOutboxRepo{},
		cache:    &fakeCache{},
		notify:   &fakeNotify{},
	}

	f.uc = NewUseCase(
		f.users, f.faculty, f.capacity, f.regs, f.outbox,
		f.cache, f.notify, fakeTxManager{}, nopLogger{},
	).WithTimeProvider(fixedClock{now: testNow})

	return f
}

func validRequest() *Request {
	return &Request{
		UserID:    10,
		FacultyID: 1,
		DateLabel: "26.09(пт)",
		SlotLabel: "10:00 - 11:00",
	}
}

func TestBookSlotSuccess(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.RegistrationID)
	assert.Equal(t, "26.09(пт)", resp.DateLabel)
	assert.Equal(t, "10:00 - 11:00", resp.SlotLabel)
	assert.Equal(t, 1, resp.Remaining)

	require.NotNil(t, f.regs.created)
	assert.Equal(t, int64(10), f.regs.created.UserID)
	assert.False(t, f.regs.created.Canceled)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, domain.EventRegistrationMirror, f.outbox.events[0].EventType)

	assert.Equal(t, 1, f.cache.invalidations)

	require.Len(t, f.notify.chatIDs, 1)
	assert.Equal(t, "chat-99", f.notify.chatIDs[0])
	assert.Contains(t, f.notify.texts[0], "Иван Петров")
}

func TestBookSlotAlreadyBooked(t *testing.T) {
	f := newFixture()
	f.regs.active = &domain.Registration{ID: 5, UserID: 10}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.Empty(t, f.outbox.events)
}

func TestBookSlotDuplicateInsertRace(t *testing.T) {
	// Параллельная вставка ловится частичным индексом в БД
	f := newFixture()
	f.regs.createErr = registrationRepo.ErrDuplicateActive

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestBookSlotLockedOut(t *testing.T) {
	f := newFixture()
	// Слот начинается через 2 часа при окне в 4
	f.uc.WithTimeProvider(fixedClock{now: time.Date(2025, 9, 26, 8, 0, 0, 0, time.UTC)})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLockedOut)
}

func TestBookSlotLockoutBoundaryIsOpen(t *testing.T) {
	f := newFixture()
	// Ровно 4 часа до начала - граница не входит в окно
	f.uc.WithTimeProvider(fixedClock{now: time.Date(2025, 9, 26, 6, 0, 0, 0, time.UTC)})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestBookSlotZeroLockoutBooksUntilStart(t *testing.T) {
	f := newFixture()
	// Админ отключил окно: запись открыта за минуту до начала слота
	f.faculty.faculty.LockoutHours = 0
	f.uc.WithTimeProvider(fixedClock{now: time.Date(2025, 9, 26, 9, 59, 0, 0, time.UTC)})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestBookSlotCapacityExhausted(t *testing.T) {
	t.Run("slot is full", func(t *testing.T) {
		f := newFixture()
		f.capacity.seats = domain.SlotSeats{TotalSeats: 1, ActiveCount: 1}

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrCapacityExhausted)
	})

	t.Run("slot was never opened", func(t *testing.T) {
		f := newFixture()
		f.capacity.err = capacityRepo.ErrCapacityNotFound

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrCapacityExhausted)
	})
}

func TestBookSlotNotCandidate(t *testing.T) {
	f := newFixture()
	f.users.users[10].IsCandidate = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNotCandidate)
}

func TestBookSlotUserNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.UserID = 404

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestBookSlotMalformedLabels(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.DateLabel = "завтра"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrMalformedSlot)

	req = validRequest()
	req.SlotLabel = "в десять"

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrMalformedSlot)
}

func TestBookSlotValidation(t *testing.T) {
	f := newFixture()

	for _, req := range []*Request{
		{UserID: 0, FacultyID: 1, DateLabel: "26.09", SlotLabel: "10:00 - 11:00"},
		{UserID: 10, FacultyID: 0, DateLabel: "26.09", SlotLabel: "10:00 - 11:00"},
		{UserID: 10, FacultyID: 1, DateLabel: "  ", SlotLabel: "10:00 - 11:00"},
		{UserID: 10, FacultyID: 1, DateLabel: "26.09", SlotLabel: ""},
	} {
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestBookSlotNoAdminChatSkipsNotify(t *testing.T) {
	f := newFixture()
	f.users.users[99].ChatID = nil

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, f.notify.chatIDs)
}

package book_slot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	facultyRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/faculty"
	registrationRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/registration"
	capacityRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/slotcapacity"
	userRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/user"
)

// UseCase use case записи кандидата в слот собеседования
type UseCase struct {
	userRepo         UserRepository
	facultyRepo      FacultyRepository
	capacityRepo     CapacityRepository
	registrationRepo RegistrationRepository
	outboxRepo       OutboxRepository
	cache            ListingCache
	notifyClient     NotifyClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	facultyRepo FacultyRepository,
	capacityRepo CapacityRepository,
	registrationRepo RegistrationRepository,
	outboxRepo OutboxRepository,
	cache ListingCache,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:         userRepo,
		facultyRepo:      facultyRepo,
		capacityRepo:     capacityRepo,
		registrationRepo: registrationRepo,
		outboxRepo:       outboxRepo,
		cache:            cache,
		notifyClient:     notifyClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет запись кандидата в слот.
// Проверки вместимости и вставка записи идут в одной сериализуемой
// транзакции: место либо занято вместе с созданием записи, либо нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: user=%d, faculty=%d, date=%s, slot=%s",
		req.UserID, req.FacultyID, req.DateLabel, req.SlotLabel)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Кандидат должен существовать и иметь роль кандидата
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("BookSlot: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("BookSlot: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if !user.CanBook() {
		uc.logger.Warn("BookSlot: user id=%d is not a candidate", req.UserID)
		return nil, ErrNotCandidate
	}

	// 3. Факультет и его политика блокировки
	faculty, err := uc.facultyRepo.GetByID(ctx, req.FacultyID)
	if err != nil {
		if errors.Is(err, facultyRepo.ErrFacultyNotFound) {
			uc.logger.Warn("BookSlot: faculty id=%d not found", req.FacultyID)
			return nil, ErrFacultyNotFound
		}
		uc.logger.Error("BookSlot: failed to get faculty id=%d: %v", req.FacultyID, err)
		return nil, fmt.Errorf("%w: failed to get faculty: %v", ErrInternal, err)
	}

	// 4. Разбор меток слота. Нечитаемые метки не бронируются.
	key, err := domain.ParseSlotKey(req.FacultyID, req.DateLabel, req.SlotLabel, now)
	if err != nil {
		uc.logger.Warn("BookSlot: malformed slot labels date=%q slot=%q: %v", req.DateLabel, req.SlotLabel, err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedSlot, err)
	}

	slotStart, err := key.StartAt()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSlot, err)
	}

	// 5. Окно блокировки: слишком близко к началу слота записаться нельзя.
	// Слоты в прошлом отсекаются этой же проверкой.
	if domain.IsWithinLockout(now, slotStart, faculty.EffectiveLockoutHours()) {
		uc.logger.Warn("BookSlot: slot %s %s is inside lockout window (%dh) for user=%d",
			req.DateLabel, req.SlotLabel, faculty.EffectiveLockoutHours(), req.UserID)
		return nil, ErrLockedOut
	}

	var (
		created   *domain.Registration
		remaining int
	)

	// 6. Сериализуемая транзакция: блокировка строки вместимости,
	// проверка остатка, вставка записи и outbox-события
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Одна активная запись на кандидата
		_, err := uc.registrationRepo.FindActiveByUser(txCtx, req.UserID)
		if err == nil {
			return ErrAlreadyBooked
		}
		if !errors.Is(err, registrationRepo.ErrRegistrationNotFound) {
			uc.logger.Error("BookSlot: failed to check active registration for user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to check active registration: %w", ErrInternal, err)
		}

		// 6.2. Блокируем строку вместимости. Отсутствие строки означает,
		// что админ не открывал слот: мест нет.
		seats, err := uc.capacityRepo.GetForUpdate(txCtx, key)
		if err != nil {
			if errors.Is(err, capacityRepo.ErrCapacityNotFound) {
				return ErrCapacityExhausted
			}
			uc.logger.Error("BookSlot: failed to lock capacity row: %w", err)
			return fmt.Errorf("%w: failed to lock capacity row: %w", ErrInternal, err)
		}

		if seats.IsFull() {
			uc.logger.Warn("BookSlot: slot %s %s is full (%d/%d)",
				req.DateLabel, req.SlotLabel, seats.ActiveCount, seats.TotalSeats)
			return ErrCapacityExhausted
		}

		// 6.3. Вставка записи. Частичный индекс в БД дублирует проверку 6.1.
		reg := &domain.Registration{
			UserID:    req.UserID,
			FacultyID: req.FacultyID,
			Date:      key.Date,
			Slot:      key.Slot,
		}

		created, err = uc.registrationRepo.Create(txCtx, reg)
		if err != nil {
			if errors.Is(err, registrationRepo.ErrDuplicateActive) {
				return ErrAlreadyBooked
			}
			uc.logger.Error("BookSlot: failed to create registration: %w", err)
			return fmt.Errorf("%w: failed to create registration: %w", ErrInternal, err)
		}

		remaining = seats.Remaining() - 1

		// 6.4. Событие зеркалирования в таблицу, в той же транзакции
		payload, err := json.Marshal(domain.RegistrationMirrorPayload{
			RegistrationID: created.ID,
			FacultyID:      req.FacultyID,
			CandidateName:  user.FullName(),
			DateLabel:      key.DateLabel(),
			SlotLabel:      key.SlotLabel(),
			Canceled:       false,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to marshal mirror payload: %v", ErrInternal, err)
		}

		if err := uc.outboxRepo.Insert(txCtx, &domain.OutboxEvent{
			EventType: domain.EventRegistrationMirror,
			Payload:   payload,
		}); err != nil {
			uc.logger.Error("BookSlot: failed to insert outbox event: %w", err)
			return fmt.Errorf("%w: failed to insert outbox event: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookSlot: registration id=%d created for user=%d, remaining=%d",
		created.ID, req.UserID, remaining)

	// 7. Пост-коммит: кеш и уведомление. Ошибки здесь запись не откатывают.
	if err := uc.cache.Invalidate(ctx, key.FacultyID, key.Date); err != nil {
		uc.logger.Warn("BookSlot: failed to invalidate listing cache: %v", err)
	}

	uc.notifyAdmin(ctx, faculty, user, key)

	return &Response{
		RegistrationID: created.ID,
		FacultyID:      req.FacultyID,
		DateLabel:      key.DateLabel(),
		SlotLabel:      key.SlotLabel(),
		Remaining:      remaining,
		CreatedAt:      created.CreatedAt,
	}, nil
}

// notifyAdmin шлёт админу факультета сообщение о новой записи.
// Неудача только логируется.
func (uc *UseCase) notifyAdmin(ctx context.Context, faculty *domain.Faculty, candidate *domain.User, key domain.SlotKey) {
	if faculty.AdminUserID == nil {
		return
	}

	admin, err := uc.userRepo.GetByID(ctx, *faculty.AdminUserID)
	if err != nil {
		uc.logger.Warn("BookSlot: failed to fetch faculty admin id=%d: %v", *faculty.AdminUserID, err)
		return
	}

	if admin.ChatID == nil || *admin.ChatID == "" {
		return
	}

	text := fmt.Sprintf("Новая запись на собеседование: %s, %s %s",
		candidate.FullName(), key.DateLabel(), key.SlotLabel())

	if err := uc.notifyClient.SendMessage(ctx, *admin.ChatID, text); err != nil {
		uc.logger.Error("BookSlot: failed to notify admin chat_id=%s: %v", *admin.ChatID, err)
	}
}

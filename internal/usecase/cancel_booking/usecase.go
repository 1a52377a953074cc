package cancel_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	cancellationRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/cancellation"
	registrationRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/registration"
)

// UseCase use case отмены записи кандидата.
// Факультет с режимом direct отменяет сразу, с режимом approval
// создаёт заявку и ждёт решения админа.
type UseCase struct {
	userRepo         UserRepository
	facultyRepo      FacultyRepository
	registrationRepo RegistrationRepository
	cancellationRepo CancellationRepository
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
	registrationRepo RegistrationRepository,
	cancellationRepo CancellationRepository,
	outboxRepo OutboxRepository,
	cache ListingCache,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:         userRepo,
		facultyRepo:      facultyRepo,
		registrationRepo: registrationRepo,
		cancellationRepo: cancellationRepo,
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

// Execute выполняет отмену записи по политике факультета
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: user=%d", req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. У кандидата должна быть активная запись
	reg, err := uc.registrationRepo.FindActiveByUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, registrationRepo.ErrRegistrationNotFound) {
			uc.logger.Warn("CancelBooking: user=%d has no active registration", req.UserID)
			return nil, ErrNoActiveBooking
		}
		uc.logger.Error("CancelBooking: failed to find registration for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to find registration: %v", ErrInternal, err)
	}

	faculty, err := uc.facultyRepo.GetByID(ctx, reg.FacultyID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to get faculty id=%d: %v", reg.FacultyID, err)
		return nil, fmt.Errorf("%w: failed to get faculty: %v", ErrInternal, err)
	}

	// 3. Окно блокировки действует на отмену так же, как на запись
	slotStart, err := reg.StartAt()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if domain.IsWithinLockout(now, slotStart, faculty.EffectiveLockoutHours()) {
		uc.logger.Warn("CancelBooking: registration id=%d is inside lockout window (%dh)",
			reg.ID, faculty.EffectiveLockoutHours())
		return nil, ErrLockedOut
	}

	if faculty.RequiresCancellationApproval() {
		return uc.requestApproval(ctx, reg, faculty, req.Reason)
	}

	return uc.cancelDirect(ctx, reg, faculty, req.Reason)
}

// cancelDirect отменяет запись сразу. Место в слоте освобождается самим
// фактом отмены: остаток вычисляется по активным записям.
func (uc *UseCase) cancelDirect(ctx context.Context, reg *domain.Registration, faculty *domain.Faculty, reason string) (*Response, error) {
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.registrationRepo.Cancel(txCtx, reg.ID, reason); err != nil {
			if errors.Is(err, registrationRepo.ErrRegistrationNotFound) {
				return ErrNoActiveBooking
			}
			uc.logger.Error("CancelBooking: failed to cancel registration id=%d: %v", reg.ID, err)
			return fmt.Errorf("%w: failed to cancel registration: %w", ErrInternal, err)
		}

		return uc.insertMirrorEvent(txCtx, reg)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: registration id=%d cancelled directly", reg.ID)

	key := reg.Key()
	if err := uc.cache.Invalidate(ctx, key.FacultyID, key.Date); err != nil {
		uc.logger.Warn("CancelBooking: failed to invalidate listing cache: %v", err)
	}

	uc.notifyAdmin(ctx, faculty, reg, fmt.Sprintf("Кандидат отменил запись на %s %s. Причина: %s",
		key.DateLabel(), key.SlotLabel(), reason))

	return &Response{Outcome: OutcomeCancelled, RegistrationID: reg.ID}, nil
}

// requestApproval создает заявку на отмену и уведомляет админа.
// Запись остаётся активной и держит место до решения.
func (uc *UseCase) requestApproval(ctx context.Context, reg *domain.Registration, faculty *domain.Faculty, reason string) (*Response, error) {
	pending := &domain.PendingCancellation{
		RegistrationID: reg.ID,
		UserID:         reg.UserID,
		FacultyID:      reg.FacultyID,
		Reason:         reason,
	}

	created, err := uc.cancellationRepo.Create(ctx, pending)
	if err != nil {
		if errors.Is(err, cancellationRepo.ErrDuplicatePending) {
			uc.logger.Warn("CancelBooking: registration id=%d already has a pending cancellation", reg.ID)
			return nil, ErrCancellationPending
		}
		uc.logger.Error("CancelBooking: failed to create cancellation request: %v", err)
		return nil, fmt.Errorf("%w: failed to create cancellation request: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelBooking: cancellation request id=%s created for registration id=%d",
		created.ID, reg.ID)

	key := reg.Key()
	uc.notifyAdmin(ctx, faculty, reg, fmt.Sprintf(
		"Заявка на отмену записи %s %s (id %s). Причина: %s",
		key.DateLabel(), key.SlotLabel(), created.ID, reason))

	return &Response{
		Outcome:        OutcomePending,
		RegistrationID: reg.ID,
		RequestID:      &created.ID,
	}, nil
}

func (uc *UseCase) insertMirrorEvent(ctx context.Context, reg *domain.Registration) error {
	candidateName := fmt.Sprintf("user %d", reg.UserID)
	if candidate, err := uc.userRepo.GetByID(ctx, reg.UserID); err == nil {
		candidateName = candidate.FullName()
	}

	key := reg.Key()
	payload, err := json.Marshal(domain.RegistrationMirrorPayload{
		RegistrationID: reg.ID,
		FacultyID:      reg.FacultyID,
		CandidateName:  candidateName,
		DateLabel:      key.DateLabel(),
		SlotLabel:      key.SlotLabel(),
		Canceled:       true,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal mirror payload: %v", ErrInternal, err)
	}

	if err := uc.outboxRepo.Insert(ctx, &domain.OutboxEvent{
		EventType: domain.EventRegistrationMirror,
		Payload:   payload,
	}); err != nil {
		uc.logger.Error("CancelBooking: failed to insert outbox event: %w", err)
		return fmt.Errorf("%w: failed to insert outbox event: %w", ErrInternal, err)
	}

	return nil
}

func (uc *UseCase) notifyAdmin(ctx context.Context, faculty *domain.Faculty, reg *domain.Registration, text string) {
	if faculty.AdminUserID == nil {
		return
	}

	admin, err := uc.userRepo.GetByID(ctx, *faculty.AdminUserID)
	if err != nil {
		uc.logger.Warn("CancelBooking: failed to fetch faculty admin id=%d: %v", *faculty.AdminUserID, err)
		return
	}

	if admin.ChatID == nil || *admin.ChatID == "" {
		return
	}

	if err := uc.notifyClient.SendMessage(ctx, *admin.ChatID, text); err != nil {
		uc.logger.Error("CancelBooking: failed to notify admin chat_id=%s: %v", *admin.ChatID, err)
	}
}

package resolve_cancellation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	cancellationRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/cancellation"
)

// UseCase use case решения админа по заявке на отмену.
// Одобрение отменяет запись и освобождает место, отклонение
// ничего в записи не меняет. В обоих случаях кандидат уведомляется.
type UseCase struct {
	userRepo         UserRepository
	facultyRepo      FacultyRepository
	registrationRepo RegistrationRepository
	cancellationRepo CancellationRepository
	outboxRepo       OutboxRepository
	cache            ListingCache
	notifyClient     NotifyClient
	txManager        TransactionManager
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
		logger:           logger,
	}
}

// Execute выполняет решение по заявке
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveCancellation: request=%s approve=%t by user=%d",
		req.RequestID, req.Approve, req.AdminUserID)

	if req.AdminUserID <= 0 {
		return nil, fmt.Errorf("%w: adminUserID must be positive", ErrInvalidInput)
	}
	if req.RequestID == uuid.Nil {
		return nil, fmt.Errorf("%w: requestID is required", ErrInvalidInput)
	}

	// 1. Заявка должна существовать и быть открытой
	pending, err := uc.cancellationRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, cancellationRepo.ErrCancellationNotFound) {
			uc.logger.Warn("ResolveCancellation: request id=%s not found", req.RequestID)
			return nil, ErrRequestNotFound
		}
		uc.logger.Error("ResolveCancellation: failed to get request id=%s: %v", req.RequestID, err)
		return nil, fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
	}

	if pending.IsResolved() {
		uc.logger.Warn("ResolveCancellation: request id=%s already resolved (%s)", req.RequestID, pending.Status)
		return nil, ErrAlreadyResolved
	}

	// 2. Решение принимает только админ факультета заявки
	faculty, err := uc.facultyRepo.GetByID(ctx, pending.FacultyID)
	if err != nil {
		uc.logger.Error("ResolveCancellation: failed to get faculty id=%d: %v", pending.FacultyID, err)
		return nil, fmt.Errorf("%w: failed to get faculty: %v", ErrInternal, err)
	}

	if !faculty.IsAdministeredBy(req.AdminUserID) {
		uc.logger.Warn("ResolveCancellation: user=%d is not admin of faculty=%d", req.AdminUserID, pending.FacultyID)
		return nil, ErrNotAuthorized
	}

	reg, err := uc.registrationRepo.GetByID(ctx, pending.RegistrationID)
	if err != nil {
		uc.logger.Error("ResolveCancellation: failed to get registration id=%d: %v", pending.RegistrationID, err)
		return nil, fmt.Errorf("%w: failed to get registration: %v", ErrInternal, err)
	}

	if req.Approve {
		err = uc.approve(ctx, pending, reg)
	} else {
		err = uc.reject(ctx, pending)
	}
	if err != nil {
		return nil, err
	}

	status := domain.CancellationStatusRejected
	if req.Approve {
		status = domain.CancellationStatusApproved
	}

	uc.notifyCandidate(ctx, pending, reg, req.Approve)

	return &Response{
		RequestID:      pending.ID,
		RegistrationID: pending.RegistrationID,
		Status:         string(status),
	}, nil
}

// approve одобряет заявку: запись отменяется, заявка закрывается,
// зеркалирование уходит в outbox. Всё в одной транзакции.
func (uc *UseCase) approve(ctx context.Context, pending *domain.PendingCancellation, reg *domain.Registration) error {
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.cancellationRepo.Resolve(txCtx, pending.ID, domain.CancellationStatusApproved); err != nil {
			if errors.Is(err, cancellationRepo.ErrCancellationNotFound) {
				return ErrAlreadyResolved
			}
			return fmt.Errorf("%w: failed to resolve request: %w", ErrInternal, err)
		}

		// Запись могла быть уже отменена напрямую; это не ошибка решения
		if reg.IsActive() {
			if err := uc.registrationRepo.Cancel(txCtx, reg.ID, pending.Reason); err != nil {
				return fmt.Errorf("%w: failed to cancel registration: %w", ErrInternal, err)
			}

			if err := uc.insertMirrorEvent(txCtx, reg); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Info("ResolveCancellation: request id=%s approved, registration id=%d cancelled",
		pending.ID, reg.ID)

	key := reg.Key()
	if err := uc.cache.Invalidate(ctx, key.FacultyID, key.Date); err != nil {
		uc.logger.Warn("ResolveCancellation: failed to invalidate listing cache: %v", err)
	}

	return nil
}

// reject отклоняет заявку. Запись остаётся как была.
func (uc *UseCase) reject(ctx context.Context, pending *domain.PendingCancellation) error {
	if err := uc.cancellationRepo.Resolve(ctx, pending.ID, domain.CancellationStatusRejected); err != nil {
		if errors.Is(err, cancellationRepo.ErrCancellationNotFound) {
			return ErrAlreadyResolved
		}
		return fmt.Errorf("%w: failed to resolve request: %w", ErrInternal, err)
	}

	uc.logger.Info("ResolveCancellation: request id=%s rejected", pending.ID)
	return nil
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
		return fmt.Errorf("%w: failed to insert outbox event: %w", ErrInternal, err)
	}

	return nil
}

// notifyCandidate сообщает кандидату решение. Неудача только логируется.
func (uc *UseCase) notifyCandidate(ctx context.Context, pending *domain.PendingCancellation, reg *domain.Registration, approved bool) {
	candidate, err := uc.userRepo.GetByID(ctx, pending.UserID)
	if err != nil {
		uc.logger.Warn("ResolveCancellation: failed to fetch candidate id=%d: %v", pending.UserID, err)
		return
	}

	if candidate.ChatID == nil || *candidate.ChatID == "" {
		return
	}

	key := reg.Key()
	text := fmt.Sprintf("Ваша заявка на отмену записи %s %s отклонена.", key.DateLabel(), key.SlotLabel())
	if approved {
		text = fmt.Sprintf("Ваша запись на %s %s отменена.", key.DateLabel(), key.SlotLabel())
	}

	if err := uc.notifyClient.SendMessage(ctx, *candidate.ChatID, text); err != nil {
		uc.logger.Error("ResolveCancellation: failed to notify candidate chat_id=%s: %v", *candidate.ChatID, err)
	}
}

package outboxrelay

import (
	"context"
	"encoding/json"
	"time"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	sheetsClient "github.com/zapis-team/ZPS-InterviewService/internal/integrations/sheets"
)

// mirrorWorksheet лист таблицы, куда зеркалируются записи
const mirrorWorksheet = "Записи"

// Статусы записи в зеркале
const (
	mirrorStatusActive    = "активна"
	mirrorStatusCancelled = "отменена"
)

// Worker воркер зеркалирования записей в Google-таблицу.
// Читает неопубликованные события пачками и дописывает строки в лист
// факультета. Ошибки не трогают путь бронирования: событие либо
// публикуется, либо копит попытки и после третьей помечается failed.
type Worker struct {
	outboxRepo   OutboxRepository
	facultyRepo  FacultyRepository
	sheetsClient SheetsClient
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger

	pollInterval time.Duration
	backoffBase  time.Duration
	batchSize    int
}

// NewWorker создает новый экземпляр воркера.
// backoffBase - пауза после упора в лимиты API, растёт линейно с числом
// попыток события.
func NewWorker(
	outboxRepo OutboxRepository,
	facultyRepo FacultyRepository,
	sheetsClient SheetsClient,
	txManager TransactionManager,
	metrics Metrics,
	pollInterval time.Duration,
	backoffBase time.Duration,
	batchSize int,
	logger Logger,
) *Worker {
	return &Worker{
		outboxRepo:   outboxRepo,
		facultyRepo:  facultyRepo,
		sheetsClient: sheetsClient,
		txManager:    txManager,
		metrics:      metrics,
		pollInterval: pollInterval,
		backoffBase:  backoffBase,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Run крутит цикл публикации до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("outboxrelay: started, poll interval %s, batch size %d", w.pollInterval, w.batchSize)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outboxrelay: stopped")
			return
		case <-ticker.C:
			if delay := w.processBatch(ctx); delay > 0 {
				select {
				case <-ctx.Done():
					w.logger.Info("outboxrelay: stopped")
					return
				case <-time.After(delay):
				}
			}
		}
	}
}

// processBatch публикует одну пачку событий.
// Возвращает паузу, которую нужно выдержать перед следующей пачкой
// (ненулевая после упора в лимиты API).
func (w *Worker) processBatch(ctx context.Context) time.Duration {
	var pause time.Duration

	err := w.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		events, err := w.outboxRepo.FetchUnpublished(txCtx, w.batchSize)
		if err != nil {
			return err
		}

		for _, event := range events {
			if err := w.publish(txCtx, event); err != nil {
				if markErr := w.outboxRepo.MarkFailed(txCtx, event.ID); markErr != nil {
					return markErr
				}

				// Третья неудача выводит событие из оборота
				if event.Attempts+1 >= 3 {
					w.metrics.IncOutboxFailed()
					w.logger.Error("outboxrelay: event id=%s dropped after %d attempts: %v",
						event.ID, event.Attempts+1, err)
				} else {
					w.logger.Warn("outboxrelay: event id=%s attempt %d failed: %v",
						event.ID, event.Attempts+1, err)
				}

				if sheetsClient.IsRateLimited(err) {
					w.metrics.IncSheetsRateLimited()
					pause = w.backoffBase * time.Duration(event.Attempts+1)
					// Лимиты общие на таблицу, дальше пачку не гоним
					return nil
				}
				continue
			}

			if err := w.outboxRepo.MarkPublished(txCtx, event.ID); err != nil {
				return err
			}
			w.metrics.IncOutboxPublished()
		}

		return nil
	})
	if err != nil {
		w.logger.Error("outboxrelay: batch failed: %v", err)
	}

	return pause
}

// publish зеркалирует одно событие в таблицу факультета
func (w *Worker) publish(ctx context.Context, event *domain.OutboxEvent) error {
	if event.EventType != domain.EventRegistrationMirror {
		w.logger.Warn("outboxrelay: unknown event type %q, event id=%s skipped", event.EventType, event.ID)
		return nil
	}

	var payload domain.RegistrationMirrorPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}

	faculty, err := w.facultyRepo.GetByID(ctx, payload.FacultyID)
	if err != nil {
		return err
	}

	// Факультет без таблицы зеркалирование не использует
	if faculty.SpreadsheetURL == nil || *faculty.SpreadsheetURL == "" {
		return nil
	}

	spreadsheetID, err := sheetsClient.ParseSpreadsheetID(*faculty.SpreadsheetURL)
	if err != nil {
		return err
	}

	if err := w.ensureMirrorWorksheet(ctx, spreadsheetID); err != nil {
		return err
	}

	status := mirrorStatusActive
	if payload.Canceled {
		status = mirrorStatusCancelled
	}

	return w.sheetsClient.AppendRow(ctx, spreadsheetID, mirrorWorksheet, []string{
		payload.CandidateName,
		payload.DateLabel,
		payload.SlotLabel,
		status,
	})
}

func (w *Worker) ensureMirrorWorksheet(ctx context.Context, spreadsheetID string) error {
	worksheets, err := w.sheetsClient.ListWorksheets(ctx, spreadsheetID)
	if err != nil {
		return err
	}

	for _, ws := range worksheets {
		if ws.Title == mirrorWorksheet {
			return nil
		}
	}

	_, err = w.sheetsClient.AddWorksheet(ctx, spreadsheetID, mirrorWorksheet)
	return err
}

package availability

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	facultyRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/faculty"
	sheetsClient "github.com/zapis-team/ZPS-InterviewService/internal/integrations/sheets"
	"github.com/zapis-team/ZPS-InterviewService/pkg/types"
)

// Разметка листа собеседующего. Даты идут по горизонтали в первой строке,
// интервалы по вертикали в первом столбце, отметки на пересечении,
// ID собеседующего в служебной ячейке под сеткой.
const (
	datesRange = "B1:I1"
	timesRange = "A2:A13"
	gridRange  = "B2:I13"
	ownerCell  = "A15"

	availableMark = "могу"
	busyMark      = "не могу"

	gridDays  = 8
	gridSlots = 12

	maxSyncAttempts  = 3
	firstSlotHour    = 10
	worksheetNameSep = "_"
)

// reservedWorksheets служебные листы таблицы, не принадлежащие собеседующим
var reservedWorksheets = map[string]struct{}{
	"Кандидаты":           {},
	"Опытные собесеры":    {},
	"Не опытные собесеры": {},
	"Записи":              {},
}

// Service сервис синхронизации доступности собеседующих с Google-таблицей
type Service struct {
	sheetsClient     SheetsClient
	availabilityRepo AvailabilityRepository
	facultyRepo      FacultyRepository
	userRepo         UserRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	backoffBase      time.Duration
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности.
// backoffBase - базовая пауза при упоре в лимиты API (растёт линейно с попыткой).
func NewService(
	sheetsClient SheetsClient,
	availabilityRepo AvailabilityRepository,
	facultyRepo FacultyRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	backoffBase time.Duration,
	logger Logger,
) *Service {
	return &Service{
		sheetsClient:     sheetsClient,
		availabilityRepo: availabilityRepo,
		facultyRepo:      facultyRepo,
		userRepo:         userRepo,
		txManager:        txManager,
		timeProvider:     timeProvider,
		backoffBase:      backoffBase,
		logger:           logger,
	}
}

// SyncFromSheet перечитывает листы собеседующих и заменяет их отметки в БД.
// Отметки каждого собеседующего заменяются целиком в одной транзакции.
// Нечитаемые метки дат и интервалов пропускаются, лист без ID владельца
// игнорируется.
func (s *Service) SyncFromSheet(ctx context.Context, adminUserID int64) (*SyncResult, error) {
	faculty, spreadsheetID, err := s.resolveSpreadsheet(ctx, adminUserID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SyncFromSheet: start for faculty=%d by user=%d", faculty.ID, adminUserID)

	var worksheets []sheetsClient.Worksheet
	err = s.withBackoff(ctx, "ListWorksheets", func() error {
		var listErr error
		worksheets, listErr = s.sheetsClient.ListWorksheets(ctx, spreadsheetID)
		return listErr
	})
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	now := s.timeProvider.Now()

	for _, ws := range worksheets {
		if _, reserved := reservedWorksheets[ws.Title]; reserved {
			continue
		}

		processed, added, err := s.syncWorksheet(ctx, faculty.ID, spreadsheetID, ws.Title, now)
		if err != nil {
			return nil, err
		}
		if !processed {
			result.SheetsSkipped++
			continue
		}
		result.SheetsProcessed++
		result.MarksAdded += added
	}

	dates, err := s.availabilityRepo.ListDatesWithAvailability(ctx, faculty.ID)
	if err != nil {
		s.logger.Warn("SyncFromSheet: failed to list dates with availability for faculty=%d: %v", faculty.ID, err)
	} else {
		for _, date := range dates {
			result.AvailableDates = append(result.AvailableDates, domain.FormatDateLabel(date))
		}
	}

	s.logger.Info("SyncFromSheet: done for faculty=%d, sheets=%d skipped=%d marks=%d",
		faculty.ID, result.SheetsProcessed, result.SheetsSkipped, result.MarksAdded)
	return result, nil
}

// syncWorksheet читает один лист и заменяет отметки его владельца.
// Возвращает processed=false для листа без валидного ID владельца.
func (s *Service) syncWorksheet(ctx context.Context, facultyID int64, spreadsheetID, title string, now time.Time) (bool, int, error) {
	ownerID, ok, err := s.readOwnerID(ctx, spreadsheetID, title)
	if err != nil {
		return false, 0, err
	}
	if !ok {
		s.logger.Warn("SyncFromSheet: worksheet %q has no owner id, skipped", title)
		return false, 0, nil
	}

	var dates, times, grid sheetsClient.Grid
	err = s.withBackoff(ctx, "ReadRange", func() error {
		var readErr error
		if dates, readErr = s.sheetsClient.ReadRange(ctx, spreadsheetID, rangeRef(title, datesRange)); readErr != nil {
			return readErr
		}
		if times, readErr = s.sheetsClient.ReadRange(ctx, spreadsheetID, rangeRef(title, timesRange)); readErr != nil {
			return readErr
		}
		grid, readErr = s.sheetsClient.ReadRange(ctx, spreadsheetID, rangeRef(title, gridRange))
		return readErr
	})
	if err != nil {
		return false, 0, err
	}

	marks := s.parseMarks(facultyID, dates, times, grid, now, title)

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return s.availabilityRepo.BulkReplace(txCtx, ownerID, facultyID, marks)
	})
	if err != nil {
		s.logger.Error("SyncFromSheet: failed to replace marks for user=%d: %v", ownerID, err)
		return false, 0, fmt.Errorf("%w: BulkReplace for user=%d: %v", ErrInternal, ownerID, err)
	}

	return true, len(marks), nil
}

// parseMarks собирает отметки доступности из сетки листа.
// Колонка с нечитаемой датой и строка с нечитаемым интервалом выпадают целиком.
func (s *Service) parseMarks(facultyID int64, dates, times, grid sheetsClient.Grid, now time.Time, title string) []domain.AvailabilityMark {
	dateByCol := make(map[int]time.Time)
	if len(dates) > 0 {
		for col, label := range dates[0] {
			parsed, err := domain.ParseDateLabel(label, now)
			if err != nil {
				s.logger.Warn("SyncFromSheet: worksheet %q column %d: %v", title, col, err)
				continue
			}
			dateByCol[col] = parsed
		}
	}

	marks := make([]domain.AvailabilityMark, 0)
	for row, cells := range grid {
		if row >= len(times) || len(times[row]) == 0 {
			continue
		}

		slot, err := types.ParseTimeRange(times[row][0])
		if err != nil {
			s.logger.Warn("SyncFromSheet: worksheet %q row %d: %v", title, row, err)
			continue
		}

		for col, cell := range cells {
			date, ok := dateByCol[col]
			if !ok {
				continue
			}
			if strings.TrimSpace(strings.ToLower(cell)) != availableMark {
				continue
			}
			marks = append(marks, domain.AvailabilityMark{
				FacultyID:   facultyID,
				Date:        date,
				Slot:        slot,
				IsAvailable: true,
			})
		}
	}

	return marks
}

// CreateInterviewerSheets создает по листу на каждого собеседующего факультета:
// сетка дат и интервалов, выпадающий список отметок, ID владельца в служебной
// ячейке. Существующие листы не трогаются.
func (s *Service) CreateInterviewerSheets(ctx context.Context, adminUserID int64) (*CreateSheetsResult, error) {
	faculty, spreadsheetID, err := s.resolveSpreadsheet(ctx, adminUserID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateInterviewerSheets: start for faculty=%d by user=%d", faculty.ID, adminUserID)

	interviewers, err := s.userRepo.ListInterviewers(ctx, faculty.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list interviewers: %v", ErrInternal, err)
	}

	var worksheets []sheetsClient.Worksheet
	err = s.withBackoff(ctx, "ListWorksheets", func() error {
		var listErr error
		worksheets, listErr = s.sheetsClient.ListWorksheets(ctx, spreadsheetID)
		return listErr
	})
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(worksheets))
	for _, ws := range worksheets {
		existing[ws.Title] = struct{}{}
	}

	result := &CreateSheetsResult{}
	for _, interviewer := range interviewers {
		title := interviewer.FirstName + worksheetNameSep + interviewer.LastName
		if _, found := existing[title]; found {
			result.SheetsSkipped++
			continue
		}

		if err := s.createWorksheet(ctx, spreadsheetID, title, interviewer.ID); err != nil {
			return nil, err
		}
		result.SheetsCreated++
	}

	s.logger.Info("CreateInterviewerSheets: done for faculty=%d, created=%d skipped=%d",
		faculty.ID, result.SheetsCreated, result.SheetsSkipped)
	return result, nil
}

func (s *Service) createWorksheet(ctx context.Context, spreadsheetID, title string, ownerID int64) error {
	var ws *sheetsClient.Worksheet
	err := s.withBackoff(ctx, "AddWorksheet", func() error {
		var addErr error
		ws, addErr = s.sheetsClient.AddWorksheet(ctx, spreadsheetID, title)
		return addErr
	})
	if err != nil {
		return err
	}

	dates := make([]string, 0, gridDays)
	start := s.timeProvider.Now().AddDate(0, 0, 1)
	for i := 0; i < gridDays; i++ {
		dates = append(dates, domain.FormatDateLabel(start.AddDate(0, 0, i)))
	}

	times := make(sheetsClient.Grid, 0, gridSlots)
	for i := 0; i < gridSlots; i++ {
		times = append(times, []string{fmt.Sprintf("%02d:00 - %02d:00", firstSlotHour+i, firstSlotHour+i+1)})
	}

	return s.withBackoff(ctx, "fill worksheet", func() error {
		if err := s.sheetsClient.UpdateRange(ctx, spreadsheetID, rangeRef(title, "B1"), sheetsClient.Grid{dates}); err != nil {
			return err
		}
		if err := s.sheetsClient.UpdateRange(ctx, spreadsheetID, rangeRef(title, "A2"), times); err != nil {
			return err
		}
		if err := s.sheetsClient.SetGridValidation(ctx, spreadsheetID, ws.ID,
			1, 1+gridSlots, 1, 1+gridDays, []string{availableMark, busyMark}); err != nil {
			return err
		}
		return s.sheetsClient.UpdateRange(ctx, spreadsheetID, rangeRef(title, ownerCell),
			sheetsClient.Grid{{strconv.FormatInt(ownerID, 10)}})
	})
}

func (s *Service) resolveSpreadsheet(ctx context.Context, adminUserID int64) (*domain.Faculty, string, error) {
	faculty, err := s.facultyRepo.GetByAdminUser(ctx, adminUserID)
	if err != nil {
		if errors.Is(err, facultyRepo.ErrFacultyNotFound) {
			s.logger.Warn("availability: user=%d administers no faculty", adminUserID)
			return nil, "", ErrNotAuthorized
		}
		return nil, "", fmt.Errorf("%w: failed to fetch faculty: %v", ErrInternal, err)
	}

	if faculty.SpreadsheetURL == nil || *faculty.SpreadsheetURL == "" {
		return nil, "", ErrNoSpreadsheet
	}

	spreadsheetID, err := sheetsClient.ParseSpreadsheetID(*faculty.SpreadsheetURL)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNoSpreadsheet, err)
	}

	return faculty, spreadsheetID, nil
}

// readOwnerID читает ID владельца листа. Пустая или нечисловая ячейка
// означает, что лист не участвует в синхронизации.
func (s *Service) readOwnerID(ctx context.Context, spreadsheetID, title string) (int64, bool, error) {
	var cell sheetsClient.Grid
	err := s.withBackoff(ctx, "read owner cell", func() error {
		var readErr error
		cell, readErr = s.sheetsClient.ReadRange(ctx, spreadsheetID, rangeRef(title, ownerCell))
		return readErr
	})
	if err != nil {
		return 0, false, err
	}

	if len(cell) == 0 || len(cell[0]) == 0 {
		return 0, false, nil
	}

	ownerID, err := strconv.ParseInt(strings.TrimSpace(cell[0][0]), 10, 64)
	if err != nil {
		return 0, false, nil
	}

	return ownerID, true, nil
}

// withBackoff выполняет операцию с линейной паузой при упоре в лимиты API.
// После исчерпания попыток возвращает ErrUpstreamSync.
func (s *Service) withBackoff(ctx context.Context, op string, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= maxSyncAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !sheetsClient.IsRateLimited(lastErr) {
			return fmt.Errorf("%w: %s: %v", ErrInternal, op, lastErr)
		}

		delay := s.backoffBase * time.Duration(attempt)
		s.logger.Warn("availability: %s rate limited, attempt %d/%d, retry in %s", op, attempt, maxSyncAttempts, delay)

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s: %v", ErrInternal, op, ctx.Err())
		case <-time.After(delay):
		}
	}

	s.logger.Error("availability: %s failed after %d attempts: %v", op, maxSyncAttempts, lastErr)
	return fmt.Errorf("%w: %s: %v", ErrUpstreamSync, op, lastErr)
}

func rangeRef(title, cells string) string {
	return title + "!" + cells
}

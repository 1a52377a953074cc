package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	facultyRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/faculty"
	sheetsClient "github.com/zapis-team/ZPS-InterviewService/internal/integrations/sheets"
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

type fakeSheetsClient struct {
	worksheets  []sheetsClient.Worksheet
	reads       map[string]sheetsClient.Grid
	readErr     error
	updates     map[string]sheetsClient.Grid
	added       []string
	validations int
}

func (f *fakeSheetsClient) ReadRange(_ context.Context, _ string, readRange string) (sheetsClient.Grid, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.reads[readRange], nil
}

func (f *fakeSheetsClient) UpdateRange(_ context.Context, _ string, writeRange string, grid sheetsClient.Grid) error {
	if f.updates == nil {
		f.updates = make(map[string]sheetsClient.Grid)
	}
	f.updates[writeRange] = grid
	return nil
}

func (f *fakeSheetsClient) ListWorksheets(_ context.Context, _ string) ([]sheetsClient.Worksheet, error) {
	return f.worksheets, nil
}

func (f *fakeSheetsClient) AddWorksheet(_ context.Context, _ string, title string) (*sheetsClient.Worksheet, error) {
	f.added = append(f.added, title)
	return &sheetsClient.Worksheet{ID: int64(len(f.added)), Title: title}, nil
}

func (f *fakeSheetsClient) SetGridValidation(_ context.Context, _ string, _ int64, _, _, _, _ int64, _ []string) error {
	f.validations++
	return nil
}

type fakeAvailabilityRepo struct {
	replaced map[int64][]domain.AvailabilityMark
}

func (f *fakeAvailabilityRepo) BulkReplace(_ context.Context, userID, _ int64, marks []domain.AvailabilityMark) error {
	if f.replaced == nil {
		f.replaced = make(map[int64][]domain.AvailabilityMark)
	}
	f.replaced[userID] = marks
	return nil
}

func (f *fakeAvailabilityRepo) ListDatesWithAvailability(_ context.Context, _ int64) ([]time.Time, error) {
	seen := make(map[time.Time]struct{})
	dates := make([]time.Time, 0)
	for _, marks := range f.replaced {
		for _, mark := range marks {
			if _, ok := seen[mark.Date]; ok {
				continue
			}
			seen[mark.Date] = struct{}{}
			dates = append(dates, mark.Date)
		}
	}
	return dates, nil
}

type fakeFacultyRepo struct {
	faculty *domain.Faculty
	err     error
}

func (f *fakeFacultyRepo) GetByAdminUser(_ context.Context, _ int64) (*domain.Faculty, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.faculty, nil
}

type fakeUserRepo struct {
	interviewers []*domain.User
}

func (f *fakeUserRepo) ListInterviewers(_ context.Context, _ int64) ([]*domain.User, error) {
	return f.interviewers, nil
}

type fixture struct {
	sheets  *fakeSheetsClient
	marks   *fakeAvailabilityRepo
	faculty *fakeFacultyRepo
	users   *fakeUserRepo
	svc     *Service
}

func newFixture() *fixture {
	f := &fixture{
		sheets: &fakeSheetsClient{},
		marks:  &fakeAvailabilityRepo{},
		faculty: &fakeFacultyRepo{faculty: &domain.Faculty{
			ID:             1,
			AdminUserID:    ptr.Ptr(int64(99)),
			SpreadsheetURL: ptr.Ptr("https://docs.google.com/spreadsheets/d/abc123/edit#gid=0"),
		}},
		users: &fakeUserRepo{},
	}

	f.svc = NewService(
		f.sheets, f.marks, f.faculty, f.users,
		fakeTxManager{}, fixedClock{now: testNow}, 0, nopLogger{},
	)

	return f
}

func TestSyncFromSheet(t *testing.T) {
	f := newFixture()
	f.sheets.worksheets = []sheetsClient.Worksheet{
		{ID: 1, Title: "Кандидаты"},
		{ID: 2, Title: "Иван_Собесер"},
		{ID: 3, Title: "Пустой"},
	}
	f.sheets.reads = map[string]sheetsClient.Grid{
		"Иван_Собесер!A15":    {{"42"}},
		"Иван_Собесер!B1:I1":  {{"26.09(пт)", "27.09"}},
		"Иван_Собесер!A2:A13": {{"10:00 - 11:00"}, {"11:00 - 12:00"}},
		"Иван_Собесер!B2:I13": {
			{"могу", "не могу"},
			{" МОГУ ", ""},
		},
		// Лист без ID владельца пропускается
		"Пустой!A15": {},
	}

	result, err := f.svc.SyncFromSheet(context.Background(), 99)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SheetsProcessed)
	assert.Equal(t, 1, result.SheetsSkipped)
	assert.Equal(t, 2, result.MarksAdded)
	assert.Equal(t, []string{"26.09(пт)"}, result.AvailableDates)

	marks := f.marks.replaced[42]
	require.Len(t, marks, 2)
	assert.Equal(t, time.Date(2025, 9, 26, 0, 0, 0, 0, time.UTC), marks[0].Date)
	assert.Equal(t, "10:00 - 11:00", marks[0].Slot.String())
	// Регистр и пробелы отметки не важны
	assert.Equal(t, "11:00 - 12:00", marks[1].Slot.String())
	assert.True(t, marks[1].IsAvailable)
}

func TestSyncFromSheetSkipsMalformedRows(t *testing.T) {
	f := newFixture()
	f.sheets.worksheets = []sheetsClient.Worksheet{{ID: 2, Title: "Иван_Собесер"}}
	f.sheets.reads = map[string]sheetsClient.Grid{
		"Иван_Собесер!A15":    {{"42"}},
		"Иван_Собесер!B1:I1":  {{"26.09", "когда-нибудь"}},
		"Иван_Собесер!A2:A13": {{"10:00 - 11:00"}, {"весь день"}},
		"Иван_Собесер!B2:I13": {
			{"могу", "могу"},
			{"могу", "могу"},
		},
	}

	result, err := f.svc.SyncFromSheet(context.Background(), 99)
	require.NoError(t, err)

	// Колонка с нечитаемой датой и строка с нечитаемым интервалом выпадают
	assert.Equal(t, 1, result.MarksAdded)
}

func TestSyncFromSheetNotAuthorized(t *testing.T) {
	f := newFixture()
	f.faculty.err = facultyRepo.ErrFacultyNotFound

	_, err := f.svc.SyncFromSheet(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestSyncFromSheetNoSpreadsheet(t *testing.T) {
	f := newFixture()
	f.faculty.faculty.SpreadsheetURL = nil

	_, err := f.svc.SyncFromSheet(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNoSpreadsheet)
}

func TestSyncFromSheetRateLimitExhaustsBudget(t *testing.T) {
	f := newFixture()
	f.sheets.worksheets = []sheetsClient.Worksheet{{ID: 2, Title: "Иван_Собесер"}}
	f.sheets.readErr = sheetsClient.ErrRateLimited

	_, err := f.svc.SyncFromSheet(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUpstreamSync)
}

func TestCreateInterviewerSheets(t *testing.T) {
	f := newFixture()
	f.users.interviewers = []*domain.User{
		{ID: 42, FirstName: "Иван", LastName: "Собесер", IsInterviewer: true},
		{ID: 43, FirstName: "Пётр", LastName: "Новиков", IsInterviewer: true},
	}
	f.sheets.worksheets = []sheetsClient.Worksheet{{ID: 2, Title: "Иван_Собесер"}}

	result, err := f.svc.CreateInterviewerSheets(context.Background(), 99)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SheetsCreated)
	assert.Equal(t, 1, result.SheetsSkipped)

	require.Equal(t, []string{"Пётр_Новиков"}, f.sheets.added)
	assert.Equal(t, 1, f.sheets.validations)

	// ID владельца записывается в служебную ячейку
	owner := f.sheets.updates["Пётр_Новиков!A15"]
	require.Len(t, owner, 1)
	assert.Equal(t, []string{"43"}, owner[0])

	// Сетка дат начинается с завтрашнего дня
	dates := f.sheets.updates["Пётр_Новиков!B1"]
	require.Len(t, dates, 1)
	require.Len(t, dates[0], 8)
	assert.Equal(t, domain.FormatDateLabel(testNow.AddDate(0, 0, 1)), dates[0][0])
}

package outboxrelay

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	sheetsClient "github.com/zapis-team/ZPS-InterviewService/internal/integrations/sheets"
	"github.com/zapis-team/ZPS-InterviewService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeOutboxRepo struct {
	events    []*domain.OutboxEvent
	published []uuid.UUID
	failed    []uuid.UUID
}

func (f *fakeOutboxRepo) FetchUnpublished(_ context.Context, _ int) ([]*domain.OutboxEvent, error) {
	return f.events, nil
}

func (f *fakeOutboxRepo) MarkPublished(_ context.Context, id uuid.UUID) error {
	f.published = append(f.published, id)
	return nil
}

func (f *fakeOutboxRepo) MarkFailed(_ context.Context, id uuid.UUID) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakeFacultyRepo struct {
	faculty *domain.Faculty
}

func (f *fakeFacultyRepo) GetByID(_ context.Context, _ int64) (*domain.Faculty, error) {
	return f.faculty, nil
}

type fakeSheetsClient struct {
	worksheets []sheetsClient.Worksheet
	appended   [][]string
	added      []string
	appendErr  error
}

func (f *fakeSheetsClient) ListWorksheets(_ context.Context, _ string) ([]sheetsClient.Worksheet, error) {
	return f.worksheets, nil
}

func (f *fakeSheetsClient) AddWorksheet(_ context.Context, _ string, title string) (*sheetsClient.Worksheet, error) {
	f.added = append(f.added, title)
	ws := sheetsClient.Worksheet{ID: int64(len(f.added)), Title: title}
	f.worksheets = append(f.worksheets, ws)
	return &ws, nil
}

func (f *fakeSheetsClient) AppendRow(_ context.Context, _ string, _ string, row []string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, row)
	return nil
}

type countingMetrics struct {
	published   int
	failed      int
	rateLimited int
}

func (m *countingMetrics) IncOutboxPublished()   { m.published++ }
func (m *countingMetrics) IncOutboxFailed()      { m.failed++ }
func (m *countingMetrics) IncSheetsRateLimited() { m.rateLimited++ }

func mirrorEvent(t *testing.T, attempts int, canceled bool) *domain.OutboxEvent {
	t.Helper()
	payload, err := json.Marshal(domain.RegistrationMirrorPayload{
		RegistrationID: 5,
		FacultyID:      1,
		CandidateName:  "Иван Петров",
		DateLabel:      "26.09(пт)",
		SlotLabel:      "10:00 - 11:00",
		Canceled:       canceled,
	})
	require.NoError(t, err)
	return &domain.OutboxEvent{
		ID:        uuid.New(),
		EventType: domain.EventRegistrationMirror,
		Payload:   payload,
		Attempts:  attempts,
	}
}

type fixture struct {
	outbox  *fakeOutboxRepo
	faculty *fakeFacultyRepo
	sheets  *fakeSheetsClient
	metrics *countingMetrics
	worker  *Worker
}

func newFixture() *fixture {
	f := &fixture{
		outbox: &fakeOutboxRepo{},
		faculty: &fakeFacultyRepo{faculty: &domain.Faculty{
			ID:             1,
			SpreadsheetURL: ptr.Ptr("https://docs.google.com/spreadsheets/d/abc123/edit"),
		}},
		sheets:  &fakeSheetsClient{worksheets: []sheetsClient.Worksheet{{ID: 1, Title: "Записи"}}},
		metrics: &countingMetrics{},
	}

	f.worker = NewWorker(
		f.outbox, f.faculty, f.sheets, fakeTxManager{}, f.metrics,
		time.Second, 30*time.Second, 10, nopLogger{},
	)

	return f
}

func TestProcessBatchPublishesMirrorRows(t *testing.T) {
	f := newFixture()
	active := mirrorEvent(t, 0, false)
	cancelled := mirrorEvent(t, 0, true)
	f.outbox.events = []*domain.OutboxEvent{active, cancelled}

	pause := f.worker.processBatch(context.Background())
	assert.Zero(t, pause)

	require.Len(t, f.sheets.appended, 2)
	assert.Equal(t, []string{"Иван Петров", "26.09(пт)", "10:00 - 11:00", "активна"}, f.sheets.appended[0])
	assert.Equal(t, []string{"Иван Петров", "26.09(пт)", "10:00 - 11:00", "отменена"}, f.sheets.appended[1])

	assert.Equal(t, []uuid.UUID{active.ID, cancelled.ID}, f.outbox.published)
	assert.Empty(t, f.outbox.failed)
	assert.Equal(t, 2, f.metrics.published)
}

func TestProcessBatchCreatesMirrorWorksheet(t *testing.T) {
	f := newFixture()
	f.sheets.worksheets = nil
	f.outbox.events = []*domain.OutboxEvent{mirrorEvent(t, 0, false)}

	pause := f.worker.processBatch(context.Background())
	assert.Zero(t, pause)

	assert.Equal(t, []string{"Записи"}, f.sheets.added)
	require.Len(t, f.sheets.appended, 1)
}

func TestProcessBatchRateLimitedPausesBatch(t *testing.T) {
	f := newFixture()
	event := mirrorEvent(t, 0, false)
	second := mirrorEvent(t, 0, false)
	f.outbox.events = []*domain.OutboxEvent{event, second}
	f.sheets.appendErr = sheetsClient.ErrRateLimited

	pause := f.worker.processBatch(context.Background())

	// Пауза растёт с числом попыток события, остаток пачки не гонится
	assert.Equal(t, 30*time.Second, pause)
	assert.Equal(t, []uuid.UUID{event.ID}, f.outbox.failed)
	assert.Empty(t, f.outbox.published)
	assert.Equal(t, 1, f.metrics.rateLimited)
	assert.Equal(t, 0, f.metrics.failed)
}

func TestProcessBatchThirdFailureDropsEvent(t *testing.T) {
	f := newFixture()
	event := mirrorEvent(t, 2, false)
	f.outbox.events = []*domain.OutboxEvent{event}
	f.sheets.appendErr = assert.AnError

	pause := f.worker.processBatch(context.Background())
	assert.Zero(t, pause)

	assert.Equal(t, []uuid.UUID{event.ID}, f.outbox.failed)
	assert.Equal(t, 1, f.metrics.failed)
}

func TestProcessBatchSkipsFacultyWithoutSpreadsheet(t *testing.T) {
	f := newFixture()
	f.faculty.faculty.SpreadsheetURL = nil
	event := mirrorEvent(t, 0, false)
	f.outbox.events = []*domain.OutboxEvent{event}

	pause := f.worker.processBatch(context.Background())
	assert.Zero(t, pause)

	// Событие публикуется без строки в таблице
	assert.Empty(t, f.sheets.appended)
	assert.Equal(t, []uuid.UUID{event.ID}, f.outbox.published)
}

func TestProcessBatchSkipsUnknownEventType(t *testing.T) {
	f := newFixture()
	event := &domain.OutboxEvent{ID: uuid.New(), EventType: "unknown", Payload: []byte("{}")}
	f.outbox.events = []*domain.OutboxEvent{event}

	pause := f.worker.processBatch(context.Background())
	assert.Zero(t, pause)

	assert.Empty(t, f.sheets.appended)
	assert.Equal(t, []uuid.UUID{event.ID}, f.outbox.published)
}

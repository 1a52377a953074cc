package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// spreadsheetURLPattern вытаскивает ID таблицы из ссылки вида
// https://docs.google.com/spreadsheets/d/<id>/edit
var spreadsheetURLPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// Client клиент для работы с Google Sheets
type Client struct {
	service *sheetsapi.Service
	log     Logger
}

// NewClient создает новый экземпляр клиента Google Sheets.
// credentialsFile - путь к JSON ключу сервисного аккаунта.
func NewClient(ctx context.Context, credentialsFile string, log Logger) (*Client, error) {
	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create service: %v", ErrUnavailable, err)
	}

	return &Client{service: service, log: log}, nil
}

// ParseSpreadsheetID извлекает ID таблицы из ссылки
func ParseSpreadsheetID(url string) (string, error) {
	matches := spreadsheetURLPattern.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	return matches[1], nil
}

// ReadRange читает прямоугольник значений листа.
// readRange в нотации A1, например "Иванов!B2:I13".
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, readRange string) (Grid, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, c.wrapAPIError("ReadRange", err)
	}

	grid := make(Grid, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		grid = append(grid, cells)
	}

	return grid, nil
}

// UpdateRange записывает прямоугольник значений в лист
func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, writeRange string, grid Grid) error {
	values := make([][]interface{}, 0, len(grid))
	for _, row := range grid {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}

	valueRange := &sheetsapi.ValueRange{Values: values}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, writeRange, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return c.wrapAPIError("UpdateRange", err)
	}

	return nil
}

// AppendRow дописывает строку в конец указанного листа
func (c *Client) AppendRow(ctx context.Context, spreadsheetID, sheetTitle string, row []string) error {
	cells := make([]interface{}, 0, len(row))
	for _, cell := range row {
		cells = append(cells, cell)
	}

	valueRange := &sheetsapi.ValueRange{Values: [][]interface{}{cells}}

	_, err := c.service.Spreadsheets.Values.Append(spreadsheetID, sheetTitle, valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return c.wrapAPIError("AppendRow", err)
	}

	return nil
}

// ListWorksheets возвращает листы таблицы
func (c *Client) ListWorksheets(ctx context.Context, spreadsheetID string) ([]Worksheet, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, c.wrapAPIError("ListWorksheets", err)
	}

	worksheets := make([]Worksheet, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties == nil {
			continue
		}
		worksheets = append(worksheets, Worksheet{
			ID:    sheet.Properties.SheetId,
			Title: sheet.Properties.Title,
		})
	}

	return worksheets, nil
}

// FindWorksheet ищет лист по имени
func (c *Client) FindWorksheet(ctx context.Context, spreadsheetID, title string) (*Worksheet, error) {
	worksheets, err := c.ListWorksheets(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}

	for _, ws := range worksheets {
		if ws.Title == title {
			return &ws, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, title)
}

// AddWorksheet создает лист с указанным именем и возвращает его метаданные
func (c *Client) AddWorksheet(ctx context.Context, spreadsheetID, title string) (*Worksheet, error) {
	request := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{
			{
				AddSheet: &sheetsapi.AddSheetRequest{
					Properties: &sheetsapi.SheetProperties{Title: title},
				},
			},
		},
	}

	resp, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, request).Context(ctx).Do()
	if err != nil {
		return nil, c.wrapAPIError("AddWorksheet", err)
	}

	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			return &Worksheet{
				ID:    reply.AddSheet.Properties.SheetId,
				Title: reply.AddSheet.Properties.Title,
			}, nil
		}
	}

	return nil, fmt.Errorf("%w: AddWorksheet - empty reply", ErrUnavailable)
}

// SetGridValidation вешает на прямоугольник листа выпадающий список
// с допустимыми значениями (отметки доступности)
func (c *Client) SetGridValidation(ctx context.Context, spreadsheetID string, sheetID int64, startRow, endRow, startCol, endCol int64, allowed []string) error {
	values := make([]*sheetsapi.ConditionValue, 0, len(allowed))
	for _, v := range allowed {
		values = append(values, &sheetsapi.ConditionValue{UserEnteredValue: v})
	}

	request := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{
			{
				SetDataValidation: &sheetsapi.SetDataValidationRequest{
					Range: &sheetsapi.GridRange{
						SheetId:          sheetID,
						StartRowIndex:    startRow,
						EndRowIndex:      endRow,
						StartColumnIndex: startCol,
						EndColumnIndex:   endCol,
					},
					Rule: &sheetsapi.DataValidationRule{
						Condition: &sheetsapi.BooleanCondition{
							Type:   "ONE_OF_LIST",
							Values: values,
						},
						ShowCustomUi: true,
						Strict:       true,
					},
				},
			},
		},
	}

	if _, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, request).Context(ctx).Do(); err != nil {
		return c.wrapAPIError("SetGridValidation", err)
	}

	return nil
}

// IsRateLimited сообщает, вызвана ли ошибка превышением квоты API
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

func (c *Client) wrapAPIError(method string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			c.log.Warn("Sheets API rate limited: %s", method)
			return fmt.Errorf("%w: %s: %v", ErrRateLimited, method, err)
		}
		if apiErr.Code == http.StatusNotFound {
			return fmt.Errorf("%w: %s: %v", ErrSheetNotFound, method, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, method, err)
}

package availability

// SyncResult итог синхронизации отметок из таблицы
type SyncResult struct {
	SheetsProcessed int `json:"sheets_processed"`
	SheetsSkipped   int `json:"sheets_skipped"`
	MarksAdded      int `json:"marks_added"`

	// AvailableDates даты, на которые после синхронизации есть хотя бы
	// один доступный собеседующий
	AvailableDates []string `json:"available_dates,omitempty"`
}

// CreateSheetsResult итог создания листов собеседующих
type CreateSheetsResult struct {
	SheetsCreated int `json:"sheets_created"`
	SheetsSkipped int `json:"sheets_skipped"`
}

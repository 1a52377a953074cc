package capacity

// SetSeatsRequest запрос на установку точного лимита мест слота
type SetSeatsRequest struct {
	AdminUserID int64
	FacultyID   int64
	DateLabel   string
	SlotLabel   string
	Seats       int
}

// AdjustSeatsRequest запрос на сдвиг лимита мест слота
type AdjustSeatsRequest struct {
	AdminUserID int64
	FacultyID   int64
	DateLabel   string
	SlotLabel   string
	Delta       int
}

// SeatsResponse результат изменения лимита: новый лимит и остаток
type SeatsResponse struct {
	TotalSeats int `json:"total_seats"`
	Remaining  int `json:"remaining"`
}

package list_open_slots

// DatesRequest модель запроса списка открытых дат
type DatesRequest struct {
	FacultyID int64
}

// DatesResponse список дат со свободными местами в легаси-формате
type DatesResponse struct {
	FacultyID int64    `json:"faculty_id"`
	Dates     []string `json:"dates"`
}

// TimeSlotsRequest модель запроса списка открытых интервалов на дату
type TimeSlotsRequest struct {
	FacultyID int64
	DateLabel string
}

// TimeSlotEntry интервал со свободными местами
type TimeSlotEntry struct {
	SlotLabel string `json:"time_slot"`
	Remaining int    `json:"remaining"`
}

// TimeSlotsResponse список интервалов на дату
type TimeSlotsResponse struct {
	FacultyID int64           `json:"faculty_id"`
	DateLabel string          `json:"date"`
	Slots     []TimeSlotEntry `json:"slots"`
}

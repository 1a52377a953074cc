package update_capacity

// Режимы изменения лимита мест
const (
	ModeSet    = "set"    // Установить точный лимит
	ModeAdjust = "adjust" // Сдвинуть лимит на дельту
)

// UpdateCapacityRequest HTTP request model
type UpdateCapacityRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Mode     string `json:"mode"`
	Seats    int    `json:"seats"`
}

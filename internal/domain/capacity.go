package domain

// SlotSeats вместимость слота вместе с текущей загрузкой.
// TotalSeats задаётся админом; остаток всегда вычисляется как
// TotalSeats - ActiveCount и не хранится отдельно, поэтому отмена записи
// возвращает место автоматически, а повторные отмены не "надувают" лимит.
type SlotSeats struct {
	Key         SlotKey
	TotalSeats  int
	ActiveCount int
}

// Remaining возвращает число свободных мест (не меньше нуля)
func (s SlotSeats) Remaining() int {
	remaining := s.TotalSeats - s.ActiveCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFull возвращает true, если свободных мест не осталось
func (s SlotSeats) IsFull() bool {
	return s.Remaining() <= 0
}

// OpenSlot слот со свободными местами в выдаче листингов
type OpenSlot struct {
	Key       SlotKey
	Remaining int
}

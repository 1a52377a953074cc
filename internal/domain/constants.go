package domain

// Default configuration values
const (
	// DefaultLockoutHours окно блокировки для нового факультета (в часах).
	// Дублирует DEFAULT колонки lockout_hours в схеме; хранимый ноль
	// означает отключённое окно, а не отсутствие настройки.
	DefaultLockoutHours = 4
)

// Business validation constants
const (
	MinLockoutHours = 0
	MaxLockoutHours = 168 // неделя

	MinSeatsPerSlot = 0
	MaxSeatsPerSlot = 10

	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

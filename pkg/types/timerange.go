package types

import (
	"errors"
	"fmt"
	"strings"
)

// TimeRange интервал времени вида "10:00 - 11:00"
// Хранится и отображается в том же виде, в котором приходит из таблиц доступности
type TimeRange struct {
	Start TimeString
	End   TimeString
}

var ErrInvalidTimeRange = errors.New("types: invalid time range format, expected \"HH:MM - HH:MM\"")

// ParseTimeRange парсит интервал вида "10:00 - 11:00" (пробелы вокруг дефиса необязательны)
func ParseTimeRange(s string) (TimeRange, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}

	start, err := NewTimeStringFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}
	end, err := NewTimeStringFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}

	if !start.IsBefore(end) {
		return TimeRange{}, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidTimeRange, start, end)
	}

	return TimeRange{Start: start, End: end}, nil
}

// String возвращает канонический вид интервала: "10:00 - 11:00"
func (r TimeRange) String() string {
	return fmt.Sprintf("%s - %s", r.Start, r.End)
}

// IsZero возвращает true для пустого интервала
func (r TimeRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zapis-team/ZPS-InterviewService/pkg/types"
)

// ErrMalformedSlotLabel возвращается при нечитаемой метке даты или интервала.
// Такие слоты fail-closed: они не бронируются и не показываются кандидатам.
var ErrMalformedSlotLabel = errors.New("domain: malformed slot label")

// SlotKey составной ключ слота: факультет + календарная дата + интервал времени.
// Легаси-метки ("26.09(пт)", "10:00 - 11:00") разбираются и рендерятся только
// на границе; внутри системы ключ всегда структурный.
type SlotKey struct {
	FacultyID int64
	Date      time.Time // полночь в локации сервиса
	Slot      types.TimeRange
}

// legacyDateLayout формат "DD.MM" без года (год берётся из now)
const legacyDateLayout = "02.01"

// weekdayLabels русские сокращения дней недели для легаси-формата
var weekdayLabels = map[time.Weekday]string{
	time.Monday:    "пн",
	time.Tuesday:   "вт",
	time.Wednesday: "ср",
	time.Thursday:  "чт",
	time.Friday:    "пт",
	time.Saturday:  "сб",
	time.Sunday:    "вс",
}

// ParseSlotKey собирает SlotKey из легаси-меток даты и интервала
func ParseSlotKey(facultyID int64, dateLabel, slotLabel string, now time.Time) (SlotKey, error) {
	date, err := ParseDateLabel(dateLabel, now)
	if err != nil {
		return SlotKey{}, err
	}

	slot, err := types.ParseTimeRange(slotLabel)
	if err != nil {
		return SlotKey{}, fmt.Errorf("%w: time slot %q", ErrMalformedSlotLabel, slotLabel)
	}

	return SlotKey{FacultyID: facultyID, Date: date, Slot: slot}, nil
}

// NewSlotKey собирает SlotKey из структурной даты и метки интервала
func NewSlotKey(facultyID int64, date time.Time, slotLabel string) (SlotKey, error) {
	slot, err := types.ParseTimeRange(slotLabel)
	if err != nil {
		return SlotKey{}, fmt.Errorf("%w: time slot %q", ErrMalformedSlotLabel, slotLabel)
	}
	return SlotKey{FacultyID: facultyID, Date: date, Slot: slot}, nil
}

// ParseDateLabel разбирает метку даты. Поддерживаются два формата:
//   - "26.09" или "26.09(пт)" - год выводится из now, суффикс дня недели игнорируется
//   - "2025-09-26" (ISO)
//
// Любая другая строка - ErrMalformedSlotLabel (fail closed).
func ParseDateLabel(label string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(label)

	// Отрезаем суффикс дня недели: "26.09(пт)" -> "26.09"
	if idx := strings.IndexByte(trimmed, '('); idx >= 0 {
		trimmed = strings.TrimSpace(trimmed[:idx])
	}

	if parsed, err := time.ParseInLocation(legacyDateLayout, trimmed, now.Location()); err == nil {
		return time.Date(now.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	if parsed, err := time.ParseInLocation(DateFormat, trimmed, now.Location()); err == nil {
		return parsed, nil
	}

	return time.Time{}, fmt.Errorf("%w: date %q", ErrMalformedSlotLabel, label)
}

// StartAt возвращает момент начала слота (дата + начало интервала)
func (k SlotKey) StartAt() (time.Time, error) {
	start, err := k.Slot.Start.OnDate(k.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedSlotLabel, err)
	}
	return start, nil
}

// DateLabel рендерит дату в легаси-формат "26.09(пт)"
func (k SlotKey) DateLabel() string {
	return FormatDateLabel(k.Date)
}

// SlotLabel рендерит интервал в канонический вид "10:00 - 11:00"
func (k SlotKey) SlotLabel() string {
	return k.Slot.String()
}

// FormatDateLabel рендерит дату в легаси-формат "26.09(пт)"
func FormatDateLabel(date time.Time) string {
	return fmt.Sprintf("%s(%s)", date.Format(legacyDateLayout), weekdayLabels[date.Weekday()])
}

package domain

import "time"

// IsWithinLockout возвращает true, когда до начала слота осталось меньше
// lockoutHours часов. Внутри этого окна и запись, и отмена запрещены.
// Граница не входит в окно: при lockout = 4 слот ровно через 4 часа ещё доступен.
func IsWithinLockout(now, slotStart time.Time, lockoutHours int) bool {
	return slotStart.Sub(now) < time.Duration(lockoutHours)*time.Hour
}

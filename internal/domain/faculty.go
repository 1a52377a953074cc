package domain

// CancellationPolicy политика отмены записи, настраиваемая по факультету
type CancellationPolicy string

const (
	// CancellationDirect отмена применяется сразу, место возвращается
	CancellationDirect CancellationPolicy = "direct"
	// CancellationApproval отмена требует подтверждения админа факультета
	CancellationApproval CancellationPolicy = "approval"
)

// IsValid проверяет, что значение политики допустимо
func (p CancellationPolicy) IsValid() bool {
	return p == CancellationDirect || p == CancellationApproval
}

// Faculty факультет, проводящий собеседования
type Faculty struct {
	ID             int64
	Name           string
	SpreadsheetURL *string // ссылка на Google-таблицу факультета (опциональна)
	AdminUserID    *int64  // администратор факультета

	// LockoutHours за сколько часов до начала слота запись и отмена запрещены
	LockoutHours int

	CancellationPolicy CancellationPolicy
}

// EffectiveLockoutHours возвращает окно блокировки факультета.
// Ноль означает, что админ отключил окно: запись и отмена открыты
// вплоть до начала слота. Дефолт для новых факультетов задаёт схема.
func (f *Faculty) EffectiveLockoutHours() int {
	if f.LockoutHours < 0 {
		return 0
	}
	return f.LockoutHours
}

// RequiresCancellationApproval возвращает true, если отмена идёт через подтверждение админа
func (f *Faculty) RequiresCancellationApproval() bool {
	return f.CancellationPolicy == CancellationApproval
}

// IsAdministeredBy возвращает true, если userID - админ этого факультета
func (f *Faculty) IsAdministeredBy(userID int64) bool {
	return f.AdminUserID != nil && *f.AdminUserID == userID
}

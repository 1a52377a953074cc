package domain

// User пользователь системы: кандидат, собеседующий или админ факультета
type User struct {
	ID        int64
	FirstName string
	LastName  string

	// ChatID идентификатор пользователя в чат-транспорте (внешний)
	ChatID *string

	// VerificationID внешний идентификатор проверки личности (например, VK ID).
	// Заполняется только у кандидатов.
	VerificationID *string

	IsCandidate    bool
	IsInterviewer  bool
	IsFacultyAdmin bool

	FacultyID *int64
}

// FullName возвращает имя и фамилию одной строкой
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CanBook возвращает true, если пользователь может записываться на собеседования
func (u *User) CanBook() bool {
	return u.IsCandidate && u.FacultyID != nil
}

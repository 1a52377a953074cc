package book_slot

import "time"

// Request модель запроса на запись в слот
type Request struct {
	UserID    int64  // ID кандидата
	FacultyID int64  // ID факультета
	DateLabel string // Дата слота: "26.09", "26.09(пт)" или ISO "2025-09-26"
	SlotLabel string // Интервал слота: "10:00 - 11:00"
}

// Response модель ответа с созданной записью
type Response struct {
	RegistrationID int64     // ID созданной записи
	FacultyID      int64     // ID факультета
	DateLabel      string    // Дата слота в легаси-формате
	SlotLabel      string    // Интервал слота
	Remaining      int       // Свободных мест в слоте после записи
	CreatedAt      time.Time // Время создания записи
}

package book_slot

import (
	"time"

	bookSlot "github.com/zapis-team/ZPS-InterviewService/internal/usecase/book_slot"
)

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	FacultyID int64  `json:"facultyId"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *BookSlotRequest) ToUseCaseRequest(userID int64) *bookSlot.Request {
	return &bookSlot.Request{
		UserID:    userID,
		FacultyID: r.FacultyID,
		DateLabel: r.Date,
		SlotLabel: r.TimeSlot,
	}
}

// BookSlotResponse HTTP response model
type BookSlotResponse struct {
	RegistrationID int64     `json:"registrationId"`
	FacultyID      int64     `json:"facultyId"`
	Date           string    `json:"date"`
	TimeSlot       string    `json:"timeSlot"`
	Remaining      int       `json:"remaining"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *BookSlotResponse {
	return &BookSlotResponse{
		RegistrationID: resp.RegistrationID,
		FacultyID:      resp.FacultyID,
		Date:           resp.DateLabel,
		TimeSlot:       resp.SlotLabel,
		Remaining:      resp.Remaining,
		CreatedAt:      resp.CreatedAt,
	}
}

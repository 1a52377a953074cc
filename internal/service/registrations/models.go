package registrations

import (
	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
)

// BookingResponse текущая запись кандидата в легаси-метках
type BookingResponse struct {
	RegistrationID int64  `json:"registration_id"`
	FacultyID      int64  `json:"faculty_id"`
	DateLabel      string `json:"date"`
	SlotLabel      string `json:"time_slot"`
}

// ReportEntry строка админского отчёта по записям
type ReportEntry struct {
	DateLabel     string   `json:"date"`
	SlotLabel     string   `json:"time_slot"`
	CandidateName string   `json:"candidate_name"`
	Interviewers  []string `json:"interviewers,omitempty"`
}

// PendingRequestEntry нерешённый запрос на отмену в админском отчёте
type PendingRequestEntry struct {
	RequestID      string `json:"request_id"`
	RegistrationID int64  `json:"registration_id"`
	CandidateName  string `json:"candidate_name"`
	Reason         string `json:"reason"`
}

// ReportResponse отчёт по активным записям факультета
type ReportResponse struct {
	FacultyID       int64                 `json:"faculty_id"`
	Entries         []ReportEntry         `json:"entries"`
	PendingRequests []PendingRequestEntry `json:"pending_requests,omitempty"`
}

func fromDomainRegistration(reg *domain.Registration) *BookingResponse {
	key := reg.Key()
	return &BookingResponse{
		RegistrationID: reg.ID,
		FacultyID:      reg.FacultyID,
		DateLabel:      key.DateLabel(),
		SlotLabel:      key.SlotLabel(),
	}
}

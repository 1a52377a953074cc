package get_faculty_registrations

import (
	"context"

	"github.com/zapis-team/ZPS-InterviewService/internal/service/registrations"
)

type RegistrationsService interface {
	GetFacultyReport(ctx context.Context, adminUserID, facultyID int64) (*registrations.ReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

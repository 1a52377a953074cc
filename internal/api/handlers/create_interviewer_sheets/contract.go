package create_interviewer_sheets

import (
	"context"

	"github.com/zapis-team/ZPS-InterviewService/internal/service/availability"
)

type AvailabilityService interface {
	CreateInterviewerSheets(ctx context.Context, adminUserID int64) (*availability.CreateSheetsResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

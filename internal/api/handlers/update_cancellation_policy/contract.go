package update_cancellation_policy

import "context"

type FacultyService interface {
	SetCancellationPolicy(ctx context.Context, adminUserID, facultyID int64, policy string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package update_lockout

import "context"

type FacultyService interface {
	SetLockoutHours(ctx context.Context, adminUserID, facultyID int64, hours int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

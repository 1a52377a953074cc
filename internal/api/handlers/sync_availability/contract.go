package sync_availability

import (
	"context"

	"github.com/zapis-team/ZPS-InterviewService/internal/service/availability"
)

type AvailabilityService interface {
	SyncFromSheet(ctx context.Context, adminUserID int64) (*availability.SyncResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_current_booking

import (
	"context"

	"github.com/zapis-team/ZPS-InterviewService/internal/service/registrations"
)

type RegistrationsService interface {
	GetCurrentBooking(ctx context.Context, userID int64) (*registrations.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_open_dates

import (
	"context"

	listOpenSlots "github.com/zapis-team/ZPS-InterviewService/internal/usecase/list_open_slots"
)

type ListOpenSlotsUseCase interface {
	Dates(ctx context.Context, req *listOpenSlots.DatesRequest) (*listOpenSlots.DatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_open_slots

import (
	"context"

	listOpenSlots "github.com/zapis-team/ZPS-InterviewService/internal/usecase/list_open_slots"
)

type ListOpenSlotsUseCase interface {
	TimeSlots(ctx context.Context, req *listOpenSlots.TimeSlotsRequest) (*listOpenSlots.TimeSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

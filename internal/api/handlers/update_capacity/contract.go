package update_capacity

import (
	"context"

	"github.com/zapis-team/ZPS-InterviewService/internal/service/capacity"
)

type CapacityService interface {
	SetSeats(ctx context.Context, req *capacity.SetSeatsRequest) (*capacity.SeatsResponse, error)
	AdjustSeats(ctx context.Context, req *capacity.AdjustSeatsRequest) (*capacity.SeatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

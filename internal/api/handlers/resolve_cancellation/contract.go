package resolve_cancellation

import (
	"context"

	resolveCancellation "github.com/zapis-team/ZPS-InterviewService/internal/usecase/resolve_cancellation"
)

type ResolveCancellationUseCase interface {
	Execute(ctx context.Context, req *resolveCancellation.Request) (*resolveCancellation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package resolve_cancellation

import (
	resolveCancellation "github.com/zapis-team/ZPS-InterviewService/internal/usecase/resolve_cancellation"
)

// ResolveCancellationRequest HTTP request model
type ResolveCancellationRequest struct {
	Approve bool `json:"approve"`
}

// ResolveCancellationResponse HTTP response model
type ResolveCancellationResponse struct {
	RequestID      string `json:"requestId"`
	RegistrationID int64  `json:"registrationId"`
	Status         string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveCancellation.Response) *ResolveCancellationResponse {
	return &ResolveCancellationResponse{
		RequestID:      resp.RequestID.String(),
		RegistrationID: resp.RegistrationID,
		Status:         resp.Status,
	}
}

package cancel_booking

import (
	cancelBooking "github.com/zapis-team/ZPS-InterviewService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Outcome        string  `json:"outcome"`
	RegistrationID int64   `json:"registrationId"`
	RequestID      *string `json:"requestId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
		Outcome:        resp.Outcome,
		RegistrationID: resp.RegistrationID,
	}

	if resp.RequestID != nil {
		id := resp.RequestID.String()
		out.RequestID = &id
	}

	return out
}

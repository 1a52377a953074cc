package cancel_booking

import (
	"fmt"
	"strings"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Reason) == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	if len([]rune(req.Reason)) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason is too long (max %d characters)",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

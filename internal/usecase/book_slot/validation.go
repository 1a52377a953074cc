package book_slot

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.FacultyID <= 0 {
		return fmt.Errorf("%w: facultyID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.DateLabel) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.SlotLabel) == "" {
		return fmt.Errorf("%w: time slot is required", ErrInvalidInput)
	}

	return nil
}

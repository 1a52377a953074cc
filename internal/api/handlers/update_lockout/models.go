package update_lockout

// UpdateLockoutRequest HTTP request model
type UpdateLockoutRequest struct {
	Hours int `json:"hours"`
}

// UpdateLockoutResponse HTTP response model
type UpdateLockoutResponse struct {
	FacultyID int64 `json:"facultyId"`
	Hours     int   `json:"hours"`
}

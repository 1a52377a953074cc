package update_cancellation_policy

// UpdatePolicyRequest HTTP request model
type UpdatePolicyRequest struct {
	Policy string `json:"policy"`
}

// UpdatePolicyResponse HTTP response model
type UpdatePolicyResponse struct {
	FacultyID int64  `json:"facultyId"`
	Policy    string `json:"policy"`
}

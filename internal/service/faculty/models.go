package faculty

// FacultyEntry факультет в публичном списке
type FacultyEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListResponse список факультетов для выбора кандидатом
type ListResponse struct {
	Faculties []FacultyEntry `json:"faculties"`
}

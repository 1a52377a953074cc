package list_faculties

import (
	"context"

	facultyService "github.com/zapis-team/ZPS-InterviewService/internal/service/faculty"
)

type FacultyService interface {
	ListFaculties(ctx context.Context) (*facultyService.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

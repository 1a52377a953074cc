package list_faculties

import (
	"net/http"

	"github.com/zapis-team/ZPS-InterviewService/internal/api/handlers"
)

type Handler struct {
	service FacultyService
	logger  Logger
}

func NewHandler(service FacultyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/faculties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListFaculties(r.Context())
	if err != nil {
		h.logger.Error("GET /faculties - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

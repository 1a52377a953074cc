package get_faculty_registrations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zapis-team/ZPS-InterviewService/internal/api/handlers"
	"github.com/zapis-team/ZPS-InterviewService/internal/api/middleware"
	"github.com/zapis-team/ZPS-InterviewService/internal/service/registrations"
)

const (
	msgInvalidFacultyID = "некорректный ID факультета"
	msgFacultyNotFound  = "факультет не найден"
	msgForbidden        = "просматривать записи может только админ факультета"
	msgUnauthorized     = "пользователь не определён"
)

type Handler struct {
	service RegistrationsService
	logger  Logger
}

func NewHandler(service RegistrationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/faculties/{facultyId}/registrations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	facultyID, err := strconv.ParseInt(vars["facultyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /faculties/{id}/registrations - Invalid faculty ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacultyID)
		return
	}

	report, err := h.service.GetFacultyReport(r.Context(), userID, facultyID)
	if err != nil {
		switch {
		case errors.Is(err, registrations.ErrFacultyNotFound):
			h.logger.Warn("GET /faculties/{id}/registrations - Faculty not found: faculty_id=%d", facultyID)
			handlers.RespondNotFound(w, msgFacultyNotFound)

		case errors.Is(err, registrations.ErrNotAuthorized):
			h.logger.Warn("GET /faculties/{id}/registrations - Forbidden: faculty_id=%d, user_id=%d", facultyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /faculties/{id}/registrations - Failed: faculty_id=%d, error=%v", facultyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

package update_lockout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zapis-team/ZPS-InterviewService/internal/api/handlers"
	"github.com/zapis-team/ZPS-InterviewService/internal/api/middleware"
	"github.com/zapis-team/ZPS-InterviewService/internal/service/faculty"
)

const (
	msgInvalidFacultyID   = "некорректный ID факультета"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidLockout     = "некорректное окно блокировки"
	msgFacultyNotFound    = "факультет не найден"
	msgForbidden          = "менять настройки может только админ факультета"
	msgUnauthorized       = "пользователь не определён"
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

// Handle PUT /api/v1/faculties/{facultyId}/lockout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	facultyID, err := strconv.ParseInt(vars["facultyId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /faculties/{id}/lockout - Invalid faculty ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacultyID)
		return
	}

	var req UpdateLockoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /faculties/{id}/lockout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetLockoutHours(r.Context(), userID, facultyID, req.Hours); err != nil {
		switch {
		case errors.Is(err, faculty.ErrInvalidLockout):
			h.logger.Warn("PUT /faculties/{id}/lockout - Invalid hours: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLockout)

		case errors.Is(err, faculty.ErrFacultyNotFound):
			h.logger.Warn("PUT /faculties/{id}/lockout - Faculty not found: faculty_id=%d", facultyID)
			handlers.RespondNotFound(w, msgFacultyNotFound)

		case errors.Is(err, faculty.ErrNotAuthorized):
			h.logger.Warn("PUT /faculties/{id}/lockout - Forbidden: faculty_id=%d, user_id=%d", facultyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /faculties/{id}/lockout - Failed: faculty_id=%d, error=%v", facultyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /faculties/{id}/lockout - Updated: faculty_id=%d, hours=%d", facultyID, req.Hours)
	handlers.RespondJSON(w, http.StatusOK, UpdateLockoutResponse{FacultyID: facultyID, Hours: req.Hours})
}

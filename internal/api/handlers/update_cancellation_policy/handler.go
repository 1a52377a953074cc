package update_cancellation_policy

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
	msgInvalidPolicy      = "некорректный режим отмены, ожидается direct или approval"
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

// Handle PUT /api/v1/faculties/{facultyId}/cancellation-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	facultyID, err := strconv.ParseInt(vars["facultyId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /faculties/{id}/cancellation-policy - Invalid faculty ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacultyID)
		return
	}

	var req UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /faculties/{id}/cancellation-policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetCancellationPolicy(r.Context(), userID, facultyID, req.Policy); err != nil {
		switch {
		case errors.Is(err, faculty.ErrInvalidPolicy):
			h.logger.Warn("PUT /faculties/{id}/cancellation-policy - Invalid policy %q", req.Policy)
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		case errors.Is(err, faculty.ErrFacultyNotFound):
			h.logger.Warn("PUT /faculties/{id}/cancellation-policy - Faculty not found: faculty_id=%d", facultyID)
			handlers.RespondNotFound(w, msgFacultyNotFound)

		case errors.Is(err, faculty.ErrNotAuthorized):
			h.logger.Warn("PUT /faculties/{id}/cancellation-policy - Forbidden: faculty_id=%d, user_id=%d", facultyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /faculties/{id}/cancellation-policy - Failed: faculty_id=%d, error=%v", facultyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /faculties/{id}/cancellation-policy - Updated: faculty_id=%d, policy=%s", facultyID, req.Policy)
	handlers.RespondJSON(w, http.StatusOK, UpdatePolicyResponse{FacultyID: facultyID, Policy: req.Policy})
}

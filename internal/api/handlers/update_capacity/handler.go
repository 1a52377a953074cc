package update_capacity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zapis-team/ZPS-InterviewService/internal/api/handlers"
	"github.com/zapis-team/ZPS-InterviewService/internal/api/middleware"
	"github.com/zapis-team/ZPS-InterviewService/internal/service/capacity"
)

const (
	msgInvalidFacultyID   = "некорректный ID факультета"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMode        = "некорректный режим, ожидается set или adjust"
	msgInvalidSeats       = "некорректное число мест"
	msgMalformedSlot      = "некорректная дата или интервал времени"
	msgFacultyNotFound    = "факультет не найден"
	msgForbidden          = "изменять места может только админ факультета"
	msgUnauthorized       = "пользователь не определён"
)

type Handler struct {
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/faculties/{facultyId}/capacity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	facultyID, err := strconv.ParseInt(vars["facultyId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /faculties/{id}/capacity - Invalid faculty ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacultyID)
		return
	}

	var req UpdateCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /faculties/{id}/capacity - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var result *capacity.SeatsResponse

	switch req.Mode {
	case ModeSet:
		result, err = h.service.SetSeats(r.Context(), &capacity.SetSeatsRequest{
			AdminUserID: userID,
			FacultyID:   facultyID,
			DateLabel:   req.Date,
			SlotLabel:   req.TimeSlot,
			Seats:       req.Seats,
		})
	case ModeAdjust:
		result, err = h.service.AdjustSeats(r.Context(), &capacity.AdjustSeatsRequest{
			AdminUserID: userID,
			FacultyID:   facultyID,
			DateLabel:   req.Date,
			SlotLabel:   req.TimeSlot,
			Delta:       req.Seats,
		})
	default:
		h.logger.Warn("PUT /faculties/{id}/capacity - Invalid mode %q", req.Mode)
		handlers.RespondBadRequest(w, msgInvalidMode)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrNotAuthorized):
			h.logger.Warn("PUT /faculties/{id}/capacity - Forbidden: faculty_id=%d, user_id=%d", facultyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, capacity.ErrFacultyNotFound):
			h.logger.Warn("PUT /faculties/{id}/capacity - Faculty not found: faculty_id=%d", facultyID)
			handlers.RespondNotFound(w, msgFacultyNotFound)

		case errors.Is(err, capacity.ErrInvalidSeats):
			h.logger.Warn("PUT /faculties/{id}/capacity - Invalid seats: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSeats)

		case errors.Is(err, capacity.ErrMalformedSlot):
			h.logger.Warn("PUT /faculties/{id}/capacity - Malformed slot: %v", err)
			handlers.RespondBadRequest(w, msgMalformedSlot)

		default:
			h.logger.Error("PUT /faculties/{id}/capacity - Failed: faculty_id=%d, error=%v", facultyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /faculties/{id}/capacity - Updated: faculty_id=%d, total=%d, remaining=%d",
		facultyID, result.TotalSeats, result.Remaining)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package get_open_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zapis-team/ZPS-InterviewService/internal/api/handlers"
	listOpenSlots "github.com/zapis-team/ZPS-InterviewService/internal/usecase/list_open_slots"
)

const (
	msgInvalidFacultyID = "некорректный ID факультета"
	msgFacultyNotFound  = "факультет не найден"
)

type Handler struct {
	useCase ListOpenSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ListOpenSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/faculties/{facultyId}/open-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	facultyID, err := strconv.ParseInt(vars["facultyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /faculties/{id}/open-dates - Invalid faculty ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacultyID)
		return
	}

	result, err := h.useCase.Dates(r.Context(), &listOpenSlots.DatesRequest{FacultyID: facultyID})
	if err != nil {
		switch {
		case errors.Is(err, listOpenSlots.ErrFacultyNotFound):
			h.logger.Warn("GET /faculties/{id}/open-dates - Faculty not found: faculty_id=%d", facultyID)
			handlers.RespondNotFound(w, msgFacultyNotFound)

		case errors.Is(err, listOpenSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFacultyID)

		default:
			h.logger.Error("GET /faculties/{id}/open-dates - Failed: faculty_id=%d, error=%v", facultyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

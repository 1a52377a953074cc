package get_open_slots

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
	msgInvalidDate      = "некорректная дата, ожидается ДД.ММ или YYYY-MM-DD"
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

// Handle GET /api/v1/faculties/{facultyId}/open-slots?date=26.09
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	facultyID, err := strconv.ParseInt(vars["facultyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /faculties/{id}/open-slots - Invalid faculty ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacultyID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.TimeSlots(r.Context(), &listOpenSlots.TimeSlotsRequest{
		FacultyID: facultyID,
		DateLabel: date,
	})
	if err != nil {
		switch {
		case errors.Is(err, listOpenSlots.ErrFacultyNotFound):
			h.logger.Warn("GET /faculties/{id}/open-slots - Faculty not found: faculty_id=%d", facultyID)
			handlers.RespondNotFound(w, msgFacultyNotFound)

		case errors.Is(err, listOpenSlots.ErrMalformedDate), errors.Is(err, listOpenSlots.ErrInvalidInput):
			h.logger.Warn("GET /faculties/{id}/open-slots - Invalid date %q: %v", date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /faculties/{id}/open-slots - Failed: faculty_id=%d, error=%v", facultyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

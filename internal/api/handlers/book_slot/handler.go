package book_slot

import (
	"errors"
	"net/http"

	"github.com/zapis-team/ZPS-InterviewService/internal/api/handlers"
	"github.com/zapis-team/ZPS-InterviewService/internal/api/middleware"
	bookSlot "github.com/zapis-team/ZPS-InterviewService/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUserNotFound       = "пользователь не найден"
	msgNotCandidate       = "запись доступна только кандидатам"
	msgFacultyNotFound    = "факультет не найден"
	msgMalformedSlot      = "некорректная дата или интервал времени"
	msgAlreadyBooked      = "вы уже записаны на собеседование"
	msgLockedOut          = "до начала слота слишком мало времени, запись закрыта"
	msgCapacityExhausted  = "в выбранном слоте не осталось мест"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/registrations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUserNotFound)
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /registrations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrAlreadyBooked):
			h.logger.Warn("POST /registrations - Already booked: user_id=%d", userID)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, bookSlot.ErrCapacityExhausted):
			h.logger.Warn("POST /registrations - Capacity exhausted: user_id=%d, faculty_id=%d", userID, req.FacultyID)
			handlers.RespondConflict(w, msgCapacityExhausted)

		case errors.Is(err, bookSlot.ErrLockedOut):
			h.logger.Warn("POST /registrations - Locked out: user_id=%d, faculty_id=%d", userID, req.FacultyID)
			handlers.RespondConflict(w, msgLockedOut)

		case errors.Is(err, bookSlot.ErrUserNotFound):
			h.logger.Warn("POST /registrations - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, bookSlot.ErrNotCandidate):
			h.logger.Warn("POST /registrations - Not a candidate: user_id=%d", userID)
			handlers.RespondForbidden(w, msgNotCandidate)

		case errors.Is(err, bookSlot.ErrFacultyNotFound):
			h.logger.Warn("POST /registrations - Faculty not found: faculty_id=%d", req.FacultyID)
			handlers.RespondNotFound(w, msgFacultyNotFound)

		case errors.Is(err, bookSlot.ErrMalformedSlot), errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /registrations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgMalformedSlot)

		default:
			h.logger.Error("POST /registrations - Failed to book slot: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /registrations - Slot booked: registration_id=%d, user_id=%d",
		result.RegistrationID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

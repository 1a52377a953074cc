package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/zapis-team/ZPS-InterviewService/internal/api/handlers"
	"github.com/zapis-team/ZPS-InterviewService/internal/api/middleware"
	cancelBooking "github.com/zapis-team/ZPS-InterviewService/internal/usecase/cancel_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgNoActiveBooking     = "у вас нет активной записи"
	msgLockedOut           = "до начала слота слишком мало времени, отмена закрыта"
	msgCancellationPending = "заявка на отмену уже ожидает решения админа"
	msgUnauthorized        = "пользователь не определён"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/registrations/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /registrations/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		UserID: userID,
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrNoActiveBooking):
			h.logger.Warn("POST /registrations/cancel - No active booking: user_id=%d", userID)
			handlers.RespondNotFound(w, msgNoActiveBooking)

		case errors.Is(err, cancelBooking.ErrLockedOut):
			h.logger.Warn("POST /registrations/cancel - Locked out: user_id=%d", userID)
			handlers.RespondConflict(w, msgLockedOut)

		case errors.Is(err, cancelBooking.ErrCancellationPending):
			h.logger.Warn("POST /registrations/cancel - Already pending: user_id=%d", userID)
			handlers.RespondConflict(w, msgCancellationPending)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /registrations/cancel - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /registrations/cancel - Failed to cancel: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /registrations/cancel - Outcome=%s: registration_id=%d, user_id=%d",
		result.Outcome, result.RegistrationID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package get_current_booking

import (
	"errors"
	"net/http"

	"github.com/zapis-team/ZPS-InterviewService/internal/api/handlers"
	"github.com/zapis-team/ZPS-InterviewService/internal/api/middleware"
	"github.com/zapis-team/ZPS-InterviewService/internal/service/registrations"
)

const (
	msgNoActiveBooking = "у вас нет активной записи"
	msgUnauthorized    = "пользователь не определён"
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

// Handle GET /api/v1/registrations/current
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetCurrentBooking(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, registrations.ErrNoActiveBooking):
			h.logger.Info("GET /registrations/current - No active booking: user_id=%d", userID)
			handlers.RespondNotFound(w, msgNoActiveBooking)

		default:
			h.logger.Error("GET /registrations/current - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

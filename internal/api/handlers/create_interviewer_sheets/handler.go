package create_interviewer_sheets

import (
	"errors"
	"net/http"

	"github.com/zapis-team/ZPS-InterviewService/internal/api/handlers"
	"github.com/zapis-team/ZPS-InterviewService/internal/api/middleware"
	"github.com/zapis-team/ZPS-InterviewService/internal/service/availability"
)

const (
	msgForbidden      = "создавать листы может только админ факультета"
	msgNoSpreadsheet  = "у факультета не настроена таблица доступности"
	msgUpstreamFailed = "таблица доступности временно недоступна, попробуйте позже"
	msgUnauthorized   = "пользователь не определён"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/sheets
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.CreateInterviewerSheets(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrNotAuthorized):
			h.logger.Warn("POST /availability/sheets - Forbidden: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrNoSpreadsheet):
			h.logger.Warn("POST /availability/sheets - No spreadsheet configured: user_id=%d", userID)
			handlers.RespondConflict(w, msgNoSpreadsheet)

		case errors.Is(err, availability.ErrUpstreamSync):
			h.logger.Error("POST /availability/sheets - Upstream failed: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamFailed)

		default:
			h.logger.Error("POST /availability/sheets - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/sheets - Done: user_id=%d, created=%d, skipped=%d",
		userID, result.SheetsCreated, result.SheetsSkipped)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package sync_availability

import (
	"errors"
	"net/http"

	"github.com/zapis-team/ZPS-InterviewService/internal/api/handlers"
	"github.com/zapis-team/ZPS-InterviewService/internal/api/middleware"
	"github.com/zapis-team/ZPS-InterviewService/internal/service/availability"
)

const (
	msgForbidden      = "запускать синхронизацию может только админ факультета"
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

// Handle POST /api/v1/availability/sync
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.SyncFromSheet(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrNotAuthorized):
			h.logger.Warn("POST /availability/sync - Forbidden: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrNoSpreadsheet):
			h.logger.Warn("POST /availability/sync - No spreadsheet configured: user_id=%d", userID)
			handlers.RespondConflict(w, msgNoSpreadsheet)

		case errors.Is(err, availability.ErrUpstreamSync):
			h.logger.Error("POST /availability/sync - Upstream failed: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamFailed)

		default:
			h.logger.Error("POST /availability/sync - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/sync - Done: user_id=%d, sheets=%d, marks=%d",
		userID, result.SheetsProcessed, result.MarksAdded)
	handlers.RespondJSON(w, http.StatusOK, result)
}

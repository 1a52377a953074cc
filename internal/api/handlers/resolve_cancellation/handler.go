package resolve_cancellation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/zapis-team/ZPS-InterviewService/internal/api/handlers"
	"github.com/zapis-team/ZPS-InterviewService/internal/api/middleware"
	resolveCancellation "github.com/zapis-team/ZPS-InterviewService/internal/usecase/resolve_cancellation"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgRequestNotFound    = "заявка на отмену не найдена"
	msgAlreadyResolved    = "по заявке уже принято решение"
	msgForbidden          = "решение принимает только админ факультета"
	msgUnauthorized       = "пользователь не определён"
)

type Handler struct {
	useCase ResolveCancellationUseCase
	logger  Logger
}

func NewHandler(useCase ResolveCancellationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/cancellations/{requestId}/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	requestID, err := uuid.Parse(vars["requestId"])
	if err != nil {
		h.logger.Warn("POST /cancellations/{id}/resolve - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req ResolveCancellationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cancellations/{id}/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &resolveCancellation.Request{
		AdminUserID: userID,
		RequestID:   requestID,
		Approve:     req.Approve,
	})
	if err != nil {
		switch {
		case errors.Is(err, resolveCancellation.ErrRequestNotFound):
			h.logger.Warn("POST /cancellations/{id}/resolve - Not found: request_id=%s", requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, resolveCancellation.ErrAlreadyResolved):
			h.logger.Warn("POST /cancellations/{id}/resolve - Already resolved: request_id=%s", requestID)
			handlers.RespondConflict(w, msgAlreadyResolved)

		case errors.Is(err, resolveCancellation.ErrNotAuthorized):
			h.logger.Warn("POST /cancellations/{id}/resolve - Forbidden: request_id=%s, user_id=%d", requestID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, resolveCancellation.ErrInvalidInput):
			h.logger.Warn("POST /cancellations/{id}/resolve - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /cancellations/{id}/resolve - Failed: request_id=%s, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cancellations/{id}/resolve - Status=%s: request_id=%s, user_id=%d",
		result.Status, requestID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

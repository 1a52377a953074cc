package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/zapis-team/ZPS-InterviewService/internal/api/handlers"
	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
)

// Заголовки аутентификации. Шлюз чата проставляет X-User-ID для известных
// пользователей; кандидат, ещё не связанный с внутренним ID, приходит
// с внешним проверочным идентификатором.
const (
	userIDHeader         = "X-User-ID"
	verificationIDHeader = "X-Verification-ID"
)

const msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"

type ctxKey int

const userIDKey ctxKey = iota

// UserResolver ищет пользователя по внешнему проверочному идентификатору
type UserResolver interface {
	GetByVerificationID(ctx context.Context, verificationID string) (*domain.User, error)
}

// Auth извлекает ID пользователя из X-User-ID или, если его нет, разрешает
// X-Verification-ID через репозиторий. Аутентификацию выполняет шлюз,
// сервис доверяет заголовкам.
func Auth(users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := r.Header.Get(userIDHeader); raw != "" {
				userID, err := strconv.ParseInt(raw, 10, 64)
				if err != nil || userID <= 0 {
					handlers.RespondUnauthorized(w, msgMissingUserID)
					return
				}
				next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
				return
			}

			if verificationID := r.Header.Get(verificationIDHeader); verificationID != "" {
				user, err := users.GetByVerificationID(r.Context(), verificationID)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), user.ID)))
					return
				}
			}

			handlers.RespondUnauthorized(w, msgMissingUserID)
		})
	}
}

func withUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext возвращает ID пользователя, положенный Auth
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

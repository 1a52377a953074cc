package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	userRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/user"
)

type fakeUserResolver struct {
	users map[string]*domain.User
}

func (f *fakeUserResolver) GetByVerificationID(_ context.Context, verificationID string) (*domain.User, error) {
	user, ok := f.users[verificationID]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return user, nil
}

func callAuth(t *testing.T, headers map[string]string) (*httptest.ResponseRecorder, int64, bool) {
	t.Helper()

	resolver := &fakeUserResolver{users: map[string]*domain.User{
		"vk-777": {ID: 10, IsCandidate: true},
	}}

	var gotID int64
	var called bool
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotID, called = UserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/registrations/current", nil)
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	rec := httptest.NewRecorder()
	Auth(resolver)(next).ServeHTTP(rec, req)
	return rec, gotID, called
}

func TestAuthUserIDHeader(t *testing.T) {
	rec, userID, called := callAuth(t, map[string]string{"X-User-ID": "42"})

	require.True(t, called)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthVerificationIDFallback(t *testing.T) {
	rec, userID, called := callAuth(t, map[string]string{"X-Verification-ID": "vk-777"})

	require.True(t, called)
	assert.Equal(t, int64(10), userID)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejectsUnknown(t *testing.T) {
	for name, headers := range map[string]map[string]string{
		"no headers":           {},
		"garbage user id":      {"X-User-ID": "abc"},
		"zero user id":         {"X-User-ID": "0"},
		"unknown verification": {"X-Verification-ID": "vk-000"},
	} {
		t.Run(name, func(t *testing.T) {
			rec, _, called := callAuth(t, headers)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

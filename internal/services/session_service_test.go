package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/auth"
)

type stubMailer struct {
	welcomes int
	resets   int
	fail     bool
}

func (m *stubMailer) SendWelcome(to, name string) error {
	m.welcomes++
	if m.fail {
		return assert.AnError
	}
	return nil
}

func (m *stubMailer) SendPasswordReset(to, name, resetURL string) error {
	m.resets++
	if m.fail {
		return assert.AnError
	}
	return nil
}

func newSessionService(t *testing.T) (*SessionService, *UserService, *stubMailer) {
	t.Helper()
	users := NewUserService(newTestDB(t))
	tokens := auth.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
	mailer := &stubMailer{}
	return NewSessionService(users, tokens, mailer, "http://localhost:3000"), users, mailer
}

func TestRegisterOpensSession(t *testing.T) {
	svc, users, _ := newSessionService(t)

	user, pair, err := svc.Register("Jane", "jane@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Empty(t, user.PasswordHash)

	stored, err := users.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, users, _ := newSessionService(t)

	user, pair, err := svc.Register("Jane", "jane@example.com", "s3cret-password")
	require.NoError(t, err)

	_, next, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	stored, err := users.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, next.RefreshToken, stored.RefreshToken)

	// The superseded token no longer matches the stored value.
	_, _, err = svc.Refresh(pair.RefreshToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revoked")
}

func TestRefreshRejectsForgedToken(t *testing.T) {
	svc, _, _ := newSessionService(t)

	_, _, err := svc.Refresh("not-a-real-token")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.From(err).Status)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	users := NewUserService(newTestDB(t))
	expired := auth.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, -time.Minute)
	svc := NewSessionService(users, expired, &stubMailer{}, "http://localhost:3000")

	_, pair, err := svc.Register("Jane", "jane@example.com", "s3cret-password")
	require.NoError(t, err)

	_, _, err = svc.Refresh(pair.RefreshToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, users, _ := newSessionService(t)

	user, pair, err := svc.Register("Jane", "jane@example.com", "s3cret-password")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.ID))

	stored, err := users.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshToken)

	_, _, err = svc.Refresh(pair.RefreshToken)
	assert.Error(t, err)
}

func TestLoginWrongPasswordLeavesSessionIntact(t *testing.T) {
	svc, users, _ := newSessionService(t)

	user, pair, err := svc.Register("Jane", "jane@example.com", "s3cret-password")
	require.NoError(t, err)

	_, _, err = svc.Login("jane@example.com", "wrong-password")
	require.Error(t, err)

	stored, err := users.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
}

func TestForgotPasswordMailFailureIsFatal(t *testing.T) {
	svc, _, mailer := newSessionService(t)
	mailer.fail = true

	_, _, err := svc.Register("Jane", "jane@example.com", "s3cret-password")
	require.NoError(t, err)

	err = svc.ForgotPassword("jane@example.com")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.From(err).Status)
	assert.Equal(t, 1, mailer.resets)
}

func TestResetPasswordRevokesSession(t *testing.T) {
	svc, users, _ := newSessionService(t)

	user, pair, err := svc.Register("Jane", "jane@example.com", "s3cret-password")
	require.NoError(t, err)

	_, token, err := users.CreateResetToken("jane@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(token, "brand-new-pass"))

	stored, err := users.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshToken)

	_, _, err = svc.Refresh(pair.RefreshToken)
	assert.Error(t, err)
}

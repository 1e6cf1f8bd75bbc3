package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/models"
)

func testUser() models.User {
	return models.User{
		ID:    "user-1",
		Email: "reader@example.com",
		Role:  models.RoleReader,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, models.RoleReader, claims.Role)
}

func TestExpiredAccessTokenIsDiscriminated(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", -time.Minute, 168*time.Hour)

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTamperedTokenIsInvalid(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGarbageTokenIsInvalid(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)

	_, err := svc.VerifyAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

// A refresh token must never pass access-token verification: the two
// channels are signed with independent secrets.
func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)

	refresh, err := svc.IssueRefreshToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)

	refresh, err := svc.IssueRefreshToken(testUser())
	require.NoError(t, err)

	claims, err := svc.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestVerifierWithDifferentSecretRejectsToken(t *testing.T) {
	issuer := NewTokenService("secret-a", "refresh-secret", 15*time.Minute, 168*time.Hour)
	verifier := NewTokenService("secret-b", "refresh-secret", 15*time.Minute, 168*time.Hour)

	token, err := issuer.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sfares/newsroom-be/internal/models"
)

// Token verification failures, discriminated so callers can report an
// expired credential differently from a forged or malformed one.
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// AccessClaims is the payload of a short-lived access token.
type AccessClaims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the subject id. Refresh tokens are used solely
// to mint new access/refresh pairs.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenService signs and verifies access and refresh tokens. The two
// channels use independent secrets and lifetimes so that leaking one does
// not compromise the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a TokenService with the given secrets and TTLs.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken signs a new access token for the user. No storage side
// effects.
func (t *TokenService) IssueAccessToken(user models.User) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.accessSecret)
}

// IssueRefreshToken signs a new refresh token for the user. The caller is
// responsible for persisting it as the user's current refresh token; that
// write is the single point of session-rotation truth. The jti makes every
// token unique even when two are minted within the same second.
func (t *TokenService) IssueRefreshToken(user models.User) (string, error) {
	now := time.Now()
	claims := &RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.refreshSecret)
}

// VerifyAccessToken parses and validates an access token string.
func (t *TokenService) VerifyAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := t.verify(tokenStr, claims, t.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefreshToken parses and validates a refresh token string.
func (t *TokenService) VerifyRefreshToken(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := t.verify(tokenStr, claims, t.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *TokenService) verify(tokenStr string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}

package services

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/auth"
	"github.com/sfares/newsroom-be/internal/models"
)

// Mailer sends transactional mail. Welcome mail is best effort; password
// reset mail is not.
type Mailer interface {
	SendWelcome(to, name string) error
	SendPasswordReset(to, name, resetURL string) error
}

// TokenPair is an access/refresh pair minted for a session.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SessionServiceProvider defines the interface for session services.
type SessionServiceProvider interface {
	Register(fullName, email, password string) (models.User, TokenPair, error)
	Login(email, password string) (models.User, TokenPair, error)
	Refresh(refreshToken string) (models.User, TokenPair, error)
	Logout(userID string) error
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
}

// SessionService owns session lifecycle: registration, login, refresh-token
// rotation, logout and password reset. Each user holds at most one valid
// refresh token; issuing a new one revokes the prior value by overwrite.
type SessionService struct {
	users    UserServiceProvider
	tokens   *auth.TokenService
	mailer   Mailer
	resetURL string // Frontend base for reset links
}

// NewSessionService creates a new SessionService.
func NewSessionService(users UserServiceProvider, tokens *auth.TokenService, mailer Mailer, resetURL string) *SessionService {
	return &SessionService{users: users, tokens: tokens, mailer: mailer, resetURL: resetURL}
}

// Register creates the account and opens its first session. The welcome mail
// is sent detached; its failure never fails the registration.
func (s *SessionService) Register(fullName, email, password string) (models.User, TokenPair, error) {
	user, err := s.users.CreateUser(fullName, email, password, models.RoleReader)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}

	pair, err := s.openSession(user)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}

	if s.mailer != nil {
		go func(email, name string) {
			if err := s.mailer.SendWelcome(email, name); err != nil {
				log.Warn().Err(err).Str("email", email).Msg("Failed to send welcome email")
			}
		}(user.Email, user.FullName)
	}

	return user.Sanitized(), pair, nil
}

// Login authenticates the credentials and rotates the session.
func (s *SessionService) Login(email, password string) (models.User, TokenPair, error) {
	user, err := s.users.AuthenticateUser(email, password)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}

	pair, err := s.openSession(user)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	return user.Sanitized(), pair, nil
}

// Refresh exchanges a valid refresh token for a fresh access/refresh pair.
// The presented token must exactly match the stored one; any prior refresh
// token becomes unusable the instant a newer one is issued, even if its own
// expiry has not passed.
func (s *SessionService) Refresh(refreshToken string) (models.User, TokenPair, error) {
	if refreshToken == "" {
		return models.User{}, TokenPair{}, apperrors.Validation("refresh token is required")
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return models.User{}, TokenPair{}, apperrors.Unauthorized("refresh token has expired, please login again")
		}
		return models.User{}, TokenPair{}, apperrors.Unauthorized("invalid refresh token")
	}

	user, err := s.users.GetUserByID(claims.Subject)
	if err != nil {
		return models.User{}, TokenPair{}, apperrors.Unauthorized("invalid refresh token: user not found")
	}

	if user.RefreshToken != refreshToken {
		return models.User{}, TokenPair{}, apperrors.Unauthorized("refresh token has been revoked")
	}

	if !user.IsActive() {
		return models.User{}, TokenPair{}, apperrors.Forbidden("account is not active")
	}

	pair, err := s.openSession(user)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	return user.Sanitized(), pair, nil
}

// Logout revokes the current session by clearing the stored refresh token.
func (s *SessionService) Logout(userID string) error {
	return s.users.ClearRefreshToken(userID)
}

// ForgotPassword issues a reset token and mails the reset link. Unlike the
// welcome mail, a delivery failure here fails the request: the user would
// otherwise wait for a mail that never arrives.
func (s *SessionService) ForgotPassword(email string) error {
	user, token, err := s.users.CreateResetToken(email)
	if err != nil {
		return err
	}

	if s.mailer == nil {
		return apperrors.Internal("mail delivery is not configured")
	}

	resetURL := s.resetURL + "/reset-password?token=" + token
	if err := s.mailer.SendPasswordReset(user.Email, user.FullName, resetURL); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("Failed to send password reset email")
		return apperrors.Internal("failed to send password reset email")
	}
	return nil
}

// ResetPassword completes the reset flow.
func (s *SessionService) ResetPassword(token, newPassword string) error {
	return s.users.ResetPassword(token, newPassword)
}

// openSession mints an access/refresh pair and persists the refresh token as
// the user's single active session. Concurrent calls race last-write-wins;
// the loser's pair is immediately unusable, which is accepted.
func (s *SessionService) openSession(user models.User) (TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.users.StoreRefreshToken(user.ID, refreshToken); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

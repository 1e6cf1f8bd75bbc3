package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

type contextKey string

// UserContextKey is the context key under which the authenticated user is
// attached to the request.
const UserContextKey = contextKey("authUser")

// UserLoader resolves a user id from a verified token to a full record.
type UserLoader interface {
	GetUserByID(id string) (models.User, error)
}

// ErrorWriter renders an API error; supplied by the api package to keep the
// error envelope uniform across middleware and handlers.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Middleware verifies bearer tokens and attaches the resolved user to the
// request context.
type Middleware struct {
	tokens   *TokenService
	users    UserLoader
	writeErr ErrorWriter
}

// NewMiddleware creates an auth Middleware.
func NewMiddleware(tokens *TokenService, users UserLoader, writeErr ErrorWriter) *Middleware {
	return &Middleware{tokens: tokens, users: users, writeErr: writeErr}
}

// Verify extracts the Authorization bearer token, validates it, loads the
// user and enforces account status. On any failure no downstream handler
// runs; a structured error is written immediately.
func (m *Middleware) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			m.writeErr(w, r, apperrors.Unauthorized("access denied: no token provided"))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenStr == "" {
			m.writeErr(w, r, apperrors.Unauthorized("access denied: token is empty"))
			return
		}

		claims, err := m.tokens.VerifyAccessToken(tokenStr)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				m.writeErr(w, r, apperrors.Unauthorized("token has expired, please login again"))
			} else {
				m.writeErr(w, r, apperrors.Unauthorized("invalid token"))
			}
			return
		}

		user, err := m.users.GetUserByID(claims.Subject)
		if err != nil {
			m.writeErr(w, r, apperrors.Unauthorized("invalid token: user not found"))
			return
		}

		if !user.IsActive() {
			m.writeErr(w, r, apperrors.Forbidden("account is not active"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user.Sanitized())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole is a second-stage guard composed after Verify. It is pure:
// the already-authenticated user's role is compared against the allow-set,
// failing closed when the role is not explicitly listed.
func (m *Middleware) RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				m.writeErr(w, r, apperrors.Unauthorized("authentication required"))
				return
			}
			if !allowed[user.Role] {
				m.writeErr(w, r, apperrors.Forbidden("access denied: insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireEditor gates a route to editors and above.
func (m *Middleware) RequireEditor(next http.Handler) http.Handler {
	return m.RequireRole(models.RoleEditor, models.RoleAdmin, models.RoleSuperadmin)(next)
}

// RequireAdmin gates a route to admins and above.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole(models.RoleAdmin, models.RoleSuperadmin)(next)
}

// UserFromContext returns the authenticated user attached by Verify.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(models.User)
	return user, ok
}

package services

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

// bcryptCost is the work factor for password hashes.
const bcryptCost = 12

// resetTokenTTL bounds how long a password-reset link stays usable.
const resetTokenTTL = time.Hour

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	ListUsers(role, status string, page, limit int) ([]models.User, int, error)
	CreateUser(fullName, email, password string, role models.Role) (models.User, error)
	UpdateUser(id string, fullName, email string, role models.Role, status string) (models.User, error)
	DeleteUser(id string) error
	AuthenticateUser(email, password string) (models.User, error)
	UpdatePassword(id, currentPassword, newPassword string) error
	StoreRefreshToken(id, token string) error
	ClearRefreshToken(id string) error
	CreateResetToken(email string) (models.User, string, error)
	ResetPassword(token, newPassword string) error
}

// UserService provides business logic for user accounts. Passwords are only
// ever stored as one-way bcrypt hashes; plaintext never touches the database
// or the logs.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

const userColumns = `id, full_name, email, password_hash, role, status, refresh_token, reset_token, reset_expiry, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Role,
		&user.Status, &user.RefreshToken, &user.ResetToken, &user.ResetExpiry,
		&user.CreatedAt, &user.UpdatedAt)
	return user, err
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	user, err := scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return models.User{}, apperrors.NotFound("user not found")
	}
	return user, err
}

// GetUserByEmail retrieves a single user by their email, including the
// password hash and stored refresh token.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	user, err := scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", normalizeEmail(email)))
	if err == sql.ErrNoRows {
		return models.User{}, apperrors.NotFound("user not found")
	}
	return user, err
}

// ListUsers retrieves users filtered by role and status with pagination.
func (s *UserService) ListUsers(role, status string, page, limit int) ([]models.User, int, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page < 1 {
		page = 1
	}

	where := "1=1"
	args := []any{}
	if role != "" {
		where += " AND role = ?"
		args = append(args, role)
	}
	if status != "" {
		where += " AND status = ?"
		args = append(args, status)
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, (page-1)*limit)
	rows, err := s.db.Query("SELECT "+userColumns+" FROM users WHERE "+where+" ORDER BY created_at DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user.Sanitized())
	}
	return users, total, rows.Err()
}

// CreateUser creates a new user, hashing their password with cost 12.
// A duplicate email fails with a conflict instead of overwriting.
func (s *UserService) CreateUser(fullName, email, password string, role models.Role) (models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, err
	}

	if role == "" {
		role = models.RoleReader
	}
	if !models.ValidRole(role) {
		return models.User{}, apperrors.Validation("invalid role")
	}

	user := models.User{
		ID:           uuid.New().String(),
		FullName:     strings.TrimSpace(fullName),
		Email:        normalizeEmail(email),
		PasswordHash: string(hashed),
		Role:         role,
		Status:       models.UserStatusActive,
	}

	_, err = s.db.Exec(
		"INSERT INTO users (id, full_name, email, password_hash, role, status) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.FullName, user.Email, user.PasswordHash, user.Role, user.Status,
	)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return models.User{}, apperrors.Conflict("user with this email already exists")
		}
		return models.User{}, err
	}

	return s.GetUserByID(user.ID)
}

// UpdateUser updates name, email, role and status; empty values keep the
// current field.
func (s *UserService) UpdateUser(id string, fullName, email string, role models.Role, status string) (models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}

	if fullName != "" {
		user.FullName = strings.TrimSpace(fullName)
	}
	if email != "" {
		user.Email = normalizeEmail(email)
	}
	if role != "" {
		if !models.ValidRole(role) {
			return models.User{}, apperrors.Validation("invalid role")
		}
		user.Role = role
	}
	if status != "" {
		switch status {
		case models.UserStatusActive, models.UserStatusInactive, models.UserStatusSuspended:
			user.Status = status
		default:
			return models.User{}, apperrors.Validation("invalid status")
		}
	}

	_, err = s.db.Exec(
		"UPDATE users SET full_name = ?, email = ?, role = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		user.FullName, user.Email, user.Role, user.Status, id,
	)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return models.User{}, apperrors.Conflict("user with this email already exists")
		}
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// DeleteUser removes a user record entirely. Deactivation should use a
// status update instead.
func (s *UserService) DeleteUser(id string) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}

// AuthenticateUser verifies a user's credentials. Inactive accounts are
// rejected regardless of password correctness.
func (s *UserService) AuthenticateUser(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, apperrors.Unauthorized("invalid credentials")
	}

	if !user.IsActive() {
		return models.User{}, apperrors.Forbidden("account is not active")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, apperrors.Unauthorized("invalid credentials")
	}

	return user, nil
}

// UpdatePassword verifies the current password, then hashes and sets a new
// one.
func (s *UserService) UpdatePassword(id, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return apperrors.Unauthorized("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", string(hashed), id)
	return err
}

// StoreRefreshToken persists token as the user's single active refresh
// token, overwriting whatever was stored before. Any prior token is revoked
// by this write.
func (s *UserService) StoreRefreshToken(id, token string) error {
	_, err := s.db.Exec("UPDATE users SET refresh_token = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", token, id)
	return err
}

// ClearRefreshToken revokes the user's session by clearing the stored token.
func (s *UserService) ClearRefreshToken(id string) error {
	return s.StoreRefreshToken(id, "")
}

// CreateResetToken generates and stores a password-reset token for the user
// with the given email, returning the user and the raw token.
func (s *UserService) CreateResetToken(email string) (models.User, string, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, "", err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return models.User{}, "", err
	}
	token := hex.EncodeToString(buf)
	expiry := time.Now().Add(resetTokenTTL)

	_, err = s.db.Exec("UPDATE users SET reset_token = ?, reset_expiry = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		token, expiry, user.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// ResetPassword validates the reset token and its expiry, sets the new
// password and revokes both the token and the current session.
func (s *UserService) ResetPassword(token, newPassword string) error {
	if token == "" {
		return apperrors.Validation("reset token is required")
	}

	user, err := scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE reset_token = ?", token))
	if err == sql.ErrNoRows {
		return apperrors.Unauthorized("invalid or expired reset token")
	}
	if err != nil {
		return err
	}

	if user.ResetExpiry == nil || time.Now().After(*user.ResetExpiry) {
		return apperrors.Unauthorized("invalid or expired reset token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		"UPDATE users SET password_hash = ?, reset_token = '', reset_expiry = NULL, refresh_token = '', updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		string(hashed), user.ID,
	)
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

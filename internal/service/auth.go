package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/plateful/mealplanner-backend/internal/models"
)

// AuthService handles registration, login and the session lifecycle. The
// cookie value it issues is a signed token carrying only the session id;
// the session itself lives in the injected SessionStore.
type AuthService struct {
	db       *gorm.DB
	sessions SessionStore
	secret   string
}

func NewAuthService(db *gorm.DB, sessions SessionStore, secret string) *AuthService {
	return &AuthService{db: db, sessions: sessions, secret: secret}
}

// Register creates a user after checking both uniqueness constraints.
// The conflict message names the colliding field. Nothing is written when
// either check fails.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, Validation("username, email and password are required")
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, Conflict("email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Unavailable(err, "failed to check existing users")
	}
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, Conflict("username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Unavailable(err, "failed to check existing users")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, Unavailable(err, "failed to hash password")
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.createUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// createUser inserts the row, translating a unique-index violation that
// slipped past the pre-checks under concurrency into a conflict.
func (s *AuthService) createUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Conflict("username or email already exists")
		}
		return Unavailable(err, "failed to create user")
	}
	return nil
}

// Login verifies credentials, creates a session and returns the signed
// session token together with the session record.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *Session, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, NotFound("user not found")
		}
		return "", nil, Unavailable(err, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, Validation("invalid credentials")
	}

	sess := Session{UserID: user.ID, Username: user.Username, Email: user.Email}
	sid := uuid.NewString()
	if err := s.sessions.Save(ctx, sid, sess); err != nil {
		return "", nil, Unavailable(err, "failed to save session")
	}

	token, err := s.signToken(sid)
	if err != nil {
		return "", nil, Unavailable(err, "failed to sign session token")
	}
	return token, &sess, nil
}

// Logout removes the session behind the token. An already-invalid token
// logs out successfully.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sid, err := s.sessionID(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, sid)
}

// SessionFromToken validates the token and looks the session up in the
// store, so a deleted session invalidates outstanding tokens immediately.
func (s *AuthService) SessionFromToken(ctx context.Context, token string) (*Session, error) {
	sid, err := s.sessionID(token)
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(ctx, sid)
}

// UpdateUsername renames a user, enforcing username uniqueness, and
// refreshes the session record behind the token.
func (s *AuthService) UpdateUsername(ctx context.Context, token, newUsername string) (*Session, error) {
	if newUsername == "" {
		return nil, Validation("username is required")
	}
	sid, err := s.sessionID(token)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return nil, err
	}

	var existing models.User
	err = s.db.WithContext(ctx).Where("username = ? AND id <> ?", newUsername, sess.UserID).First(&existing).Error
	if err == nil {
		return nil, Conflict("username already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Unavailable(err, "failed to check existing users")
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", sess.UserID).Update("username", newUsername)
	if res.Error != nil {
		return nil, Unavailable(res.Error, "failed to update username")
	}
	if res.RowsAffected == 0 {
		return nil, NotFound("user %s not found", sess.UserID)
	}

	sess.Username = newUsername
	if err := s.sessions.Save(ctx, sid, *sess); err != nil {
		return nil, Unavailable(err, "failed to refresh session")
	}
	return sess, nil
}

// ListUsers returns all users; password hashes never serialize.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, Unavailable(err, "failed to fetch users")
	}
	return users, nil
}

// DeleteUser removes a user by id; a missing id reports not-found.
func (s *AuthService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return Unavailable(res.Error, "failed to delete user")
	}
	if res.RowsAffected == 0 {
		return NotFound("user %s not found", id)
	}
	return nil
}

// RenameUser updates a user's username by id (admin path, no session).
func (s *AuthService) RenameUser(ctx context.Context, id uuid.UUID, newUsername string) error {
	if newUsername == "" {
		return Validation("username is required")
	}
	var existing models.User
	err := s.db.WithContext(ctx).Where("username = ? AND id <> ?", newUsername, id).First(&existing).Error
	if err == nil {
		return Conflict("username already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Unavailable(err, "failed to check existing users")
	}
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("username", newUsername)
	if res.Error != nil {
		return Unavailable(res.Error, "failed to update user")
	}
	if res.RowsAffected == 0 {
		return NotFound("user %s not found", id)
	}
	return nil
}

func (s *AuthService) signToken(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(SessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *AuthService) sessionID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", Validation("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", Validation("invalid session token")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", Validation("invalid session token")
	}
	return sid, nil
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/helpingbuddy/forum-api/internal/core/domain"
	"github.com/helpingbuddy/forum-api/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements registration, login, and logout. Tokens are HS256
// JWTs carrying a session id; logout deletes the session record, which
// invalidates the token before its JWT expiry.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if username == "" || input.Password == "" {
		return "", nil, domain.ErrRegistrationInvalid
	}
	if len(input.Password) < minPasswordLength {
		return "", nil, domain.ErrRegistrationInvalid
	}
	if input.Password != input.Confirmation {
		return "", nil, domain.ErrRegistrationInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.establishSession(ctx, created)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return token, created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.establishSession(ctx, user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// establishSession records a session and signs a token referencing it.
func (s *AuthService) establishSession(ctx context.Context, user *domain.User) (string, error) {
	session := ports.Session{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"sid":      session.ID,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

package ports

import (
	"context"

	"github.com/helpingbuddy/forum-api/internal/core/domain"
)

// Session is the server-side record behind an issued token. Logout deletes it,
// which invalidates the token before its JWT expiry.
type Session struct {
	ID       string
	UserID   string
	Username string
}

// SessionStore keeps live sessions. Implementations apply the configured TTL
// on Put.
type SessionStore interface {
	Put(ctx context.Context, s Session) error
	// Get returns the session or domain.ErrUnauthorized when it is absent
	// or expired.
	Get(ctx context.Context, sessionID string) (*Session, error)
	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username     string
	Password     string
	Confirmation string
	Email        string
}

// AuthService implements registration, login, and logout.
type AuthService interface {
	// Register validates the input, persists the user, and establishes a
	// session. Fails with domain.ErrRegistrationInvalid on rule violations
	// and domain.ErrUserExists on username collision.
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)

	// Login verifies credentials and establishes a session. Fails with
	// domain.ErrUserNotFound for unknown usernames and
	// domain.ErrInvalidCredentials for a password mismatch.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)

	// Logout drops the session. Always succeeds.
	Logout(ctx context.Context, sessionID string) error
}

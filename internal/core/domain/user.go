package domain

import "time"

// User models a registered forum member.
//
// Usernames are stored lowercase; normalization happens in the service layer
// before any lookup or write.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

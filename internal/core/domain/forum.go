package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrRegistrationInvalid = errors.New("registration rejected")
var ErrRoomNotFound = errors.New("room not found")
var ErrMessageNotFound = errors.New("message not found")
var ErrUnauthorized = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")

// Topic is a named category shared by rooms. Names are unique; topics are
// created on demand when a room references a name that does not exist yet.
type Topic struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Room is a topic-scoped discussion thread. The host is the creating user and
// the sole authority allowed to update or delete the room. TopicName is
// denormalized from the topic so room search never needs a join.
type Room struct {
	ID             string    `json:"id"`
	HostID         string    `json:"host_id"`
	HostName       string    `json:"host_name"`
	TopicID        string    `json:"topic_id"`
	TopicName      string    `json:"topic_name"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	ParticipantIDs []string  `json:"participant_ids"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsHost reports whether userID is the room's host.
func (r *Room) IsHost(userID string) bool {
	return userID != "" && userID == r.HostID
}

// Message is a single post authored by a user within a room. Room name, topic
// name, and author username are denormalized for the activity feed and profile
// views; the room repository keeps them in sync on room updates.
type Message struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"room_id"`
	RoomName   string    `json:"room_name"`
	TopicName  string    `json:"topic_name"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsAuthor reports whether userID authored the message.
func (m *Message) IsAuthor(userID string) bool {
	return userID != "" && userID == m.AuthorID
}

package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Username     string `json:"username"     validate:"required"`
	Password     string `json:"password"     validate:"required,min=8"`
	Confirmation string `json:"confirmation" validate:"required,eqfield=Password"`
	Email        string `json:"email"        validate:"omitempty,email"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type roomRequest struct {
	Topic       string `json:"topic"       validate:"required"`
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
}

type postMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"omitempty,email"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type topicResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type roomResponse struct {
	ID           string    `json:"id"`
	Host         string    `json:"host"`
	HostID       string    `json:"host_id"`
	Topic        string    `json:"topic"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Participants int       `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Room      string    `json:"room"`
	Topic     string    `json:"topic"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type homeResponse struct {
	Rooms     []roomResponse    `json:"rooms"`
	RoomCount int               `json:"room_count"`
	Topics    []topicResponse   `json:"topics"`
	Feed      []messageResponse `json:"feed"`
}

type roomDetailResponse struct {
	Room         roomResponse      `json:"room"`
	Messages     []messageResponse `json:"messages"`
	Participants []userResponse    `json:"participants"`
}

type profileResponse struct {
	User     userResponse      `json:"user"`
	Rooms    []roomResponse    `json:"rooms"`
	Messages []messageResponse `json:"messages"`
	Topics   []topicResponse   `json:"topics"`
}

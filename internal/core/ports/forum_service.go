package ports

import (
	"context"

	"github.com/helpingbuddy/forum-api/internal/core/domain"
)

// HomeTopicLimit caps the topic sidebar on the home listing.
const HomeTopicLimit = 5

// HomeResult is the aggregate returned by ListRooms for the home view.
//
// Rooms match on topic name, room name, or description; Feed matches on topic
// name only. The narrower feed predicate is deliberate, see DESIGN.md.
type HomeResult struct {
	Rooms     []*domain.Room
	RoomCount int
	Topics    []*domain.Topic
	Feed      []*domain.Message
}

// RoomDetail is the full room view returned by GetRoom.
type RoomDetail struct {
	Room         *domain.Room
	Messages     []*domain.Message
	Participants []*domain.User
}

// UserProfile is the aggregate returned by GetUserProfile.
type UserProfile struct {
	User     *domain.User
	Rooms    []*domain.Room
	Messages []*domain.Message
	Topics   []*domain.Topic
}

// CreateRoomInput carries all data needed to create a room. HostID is the
// authenticated identity; it is always passed explicitly, never read from
// ambient state.
type CreateRoomInput struct {
	HostID      string
	TopicName   string
	Name        string
	Description string
}

// UpdateRoomInput carries a room mutation request. RequesterID must match the
// room's host.
type UpdateRoomInput struct {
	RequesterID string
	RoomID      string
	TopicName   string
	Name        string
	Description string
}

// PostMessageInput carries a new message. AuthorID is the authenticated identity.
type PostMessageInput struct {
	RoomID   string
	AuthorID string
	Body     string
}

// UpdateProfileInput mutates the requester's own user record; there is no
// target-id parameter.
type UpdateProfileInput struct {
	RequesterID string
	Username    string
	Email       string
}

// ForumService defines the read, search, and ownership-gated mutation
// operations of the forum.
type ForumService interface {
	ListRooms(ctx context.Context, query string) (*HomeResult, error)
	GetRoom(ctx context.Context, roomID string) (*RoomDetail, error)
	GetUserProfile(ctx context.Context, userID string) (*UserProfile, error)
	ListTopics(ctx context.Context) ([]*domain.Topic, error)
	ListActivity(ctx context.Context) ([]*domain.Message, error)

	CreateRoom(ctx context.Context, input CreateRoomInput) (*domain.Room, error)
	UpdateRoom(ctx context.Context, input UpdateRoomInput) (*domain.Room, error)
	DeleteRoom(ctx context.Context, requesterID, roomID string) error
	PostMessage(ctx context.Context, input PostMessageInput) (*domain.Message, error)
	DeleteMessage(ctx context.Context, requesterID, messageID string) error
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/helpingbuddy/forum-api/internal/core/domain"
)

// TopicRepository defines persistence operations for topics.
type TopicRepository interface {
	// GetOrCreate returns the topic with the given name, creating it
	// atomically when absent. The room always references an existing topic.
	GetOrCreate(ctx context.Context, name string) (*domain.Topic, error)

	// List returns topics in store order. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]*domain.Topic, error)
}

// RoomRepository defines persistence operations for rooms.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)

	// FindByID returns domain.ErrRoomNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Room, error)

	// Search returns rooms whose topic name, room name, or description
	// contains query case-insensitively. An empty query matches all rooms.
	Search(ctx context.Context, query string) ([]*domain.Room, error)

	// FindByHost returns the rooms hosted by the given user.
	FindByHost(ctx context.Context, hostID string) ([]*domain.Room, error)

	// Update overwrites name, topic, and description, and propagates the
	// denormalized topic and room names to the room's messages.
	Update(ctx context.Context, room *domain.Room) error

	// Delete removes the room and cascades to its messages.
	Delete(ctx context.Context, id string) error
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	// Post inserts the message and adds its author to the room's
	// participant set in the same repository call. Membership is a set:
	// posting twice never duplicates the participant.
	Post(ctx context.Context, msg *domain.Message) (*domain.Message, error)

	// FindByID returns domain.ErrMessageNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Message, error)

	// ListByRoom returns a room's messages in chronological order.
	ListByRoom(ctx context.Context, roomID string) ([]*domain.Message, error)

	// ListByAuthor returns a user's messages, newest first.
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Message, error)

	// ListAll returns every message, newest first (activity feed).
	ListAll(ctx context.Context) ([]*domain.Message, error)

	// SearchByTopic returns messages whose room's topic name contains query
	// case-insensitively, newest first.
	SearchByTopic(ctx context.Context, query string) ([]*domain.Message, error)

	Delete(ctx context.Context, id string) error
}

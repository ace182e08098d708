package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/helpingbuddy/forum-api/internal/core/domain"
	"github.com/helpingbuddy/forum-api/internal/core/ports"
)

// ForumService orchestrates browsing, search, and the ownership-gated
// mutation flow. Every operation on an owned entity compares the acting
// identity against the recorded owner and refuses with domain.ErrForbidden on
// mismatch; a missing identity is domain.ErrUnauthorized instead.
type ForumService struct {
	users    ports.UserRepository
	topics   ports.TopicRepository
	rooms    ports.RoomRepository
	messages ports.MessageRepository
	logger   zerolog.Logger
}

func NewForumService(
	users ports.UserRepository,
	topics ports.TopicRepository,
	rooms ports.RoomRepository,
	messages ports.MessageRepository,
	logger zerolog.Logger,
) *ForumService {
	return &ForumService{
		users:    users,
		topics:   topics,
		rooms:    rooms,
		messages: messages,
		logger:   logger,
	}
}

// ListRooms assembles the home view: rooms matching query on topic name, room
// name, or description, the room count, the first topics, and an activity feed
// of messages matching query on topic name only.
func (s *ForumService) ListRooms(ctx context.Context, query string) (*ports.HomeResult, error) {
	rooms, err := s.rooms.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	topics, err := s.topics.List(ctx, ports.HomeTopicLimit)
	if err != nil {
		return nil, fmt.Errorf("list rooms: topics: %w", err)
	}

	feed, err := s.messages.SearchByTopic(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: feed: %w", err)
	}

	return &ports.HomeResult{
		Rooms:     rooms,
		RoomCount: len(rooms),
		Topics:    topics,
		Feed:      feed,
	}, nil
}

// GetRoom returns a room with its chronological messages and participants.
func (s *ForumService) GetRoom(ctx context.Context, roomID string) (*ports.RoomDetail, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("get room: messages: %w", err)
	}

	participants, err := s.users.FindByIDs(ctx, room.ParticipantIDs)
	if err != nil {
		return nil, fmt.Errorf("get room: participants: %w", err)
	}

	return &ports.RoomDetail{Room: room, Messages: msgs, Participants: participants}, nil
}

// GetUserProfile returns a user with their hosted rooms, authored messages,
// and all topics.
func (s *ForumService) GetUserProfile(ctx context.Context, userID string) (*ports.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.FindByHost(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("user profile: rooms: %w", err)
	}

	msgs, err := s.messages.ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("user profile: messages: %w", err)
	}

	topics, err := s.topics.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("user profile: topics: %w", err)
	}

	return &ports.UserProfile{User: user, Rooms: rooms, Messages: msgs, Topics: topics}, nil
}

func (s *ForumService) ListTopics(ctx context.Context) ([]*domain.Topic, error) {
	return s.topics.List(ctx, 0)
}

func (s *ForumService) ListActivity(ctx context.Context) ([]*domain.Message, error) {
	return s.messages.ListAll(ctx)
}

// CreateRoom creates a room for the authenticated host, creating the topic by
// name when it does not exist yet.
func (s *ForumService) CreateRoom(ctx context.Context, input ports.CreateRoomInput) (*domain.Room, error) {
	if input.HostID == "" {
		return nil, domain.ErrUnauthorized
	}

	host, err := s.users.FindByID(ctx, input.HostID)
	if err != nil {
		return nil, err
	}

	topic, err := s.topics.GetOrCreate(ctx, strings.TrimSpace(input.TopicName))
	if err != nil {
		return nil, fmt.Errorf("create room: topic: %w", err)
	}

	now := time.Now().UTC()
	room := &domain.Room{
		HostID:      host.ID,
		HostName:    host.Username,
		TopicID:     topic.ID,
		TopicName:   topic.Name,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.rooms.Create(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.logger.Info().Str("room_id", created.ID).Str("host", host.Username).Str("topic", topic.Name).Msg("room created")
	return created, nil
}

// UpdateRoom overwrites a room's name, topic, and description. Only the host
// may update a room.
func (s *ForumService) UpdateRoom(ctx context.Context, input ports.UpdateRoomInput) (*domain.Room, error) {
	if input.RequesterID == "" {
		return nil, domain.ErrUnauthorized
	}

	room, err := s.rooms.FindByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.IsHost(input.RequesterID) {
		return nil, domain.ErrForbidden
	}

	topic, err := s.topics.GetOrCreate(ctx, strings.TrimSpace(input.TopicName))
	if err != nil {
		return nil, fmt.Errorf("update room: topic: %w", err)
	}

	room.Name = input.Name
	room.TopicID = topic.ID
	room.TopicName = topic.Name
	room.Description = input.Description
	room.UpdatedAt = time.Now().UTC()

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}

	s.logger.Info().Str("room_id", room.ID).Str("topic", topic.Name).Msg("room updated")
	return room, nil
}

// DeleteRoom removes a room and, via the store cascade, its messages. Only the
// host may delete a room.
func (s *ForumService) DeleteRoom(ctx context.Context, requesterID, roomID string) error {
	if requesterID == "" {
		return domain.ErrUnauthorized
	}

	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.IsHost(requesterID) {
		return domain.ErrForbidden
	}

	if err := s.rooms.Delete(ctx, room.ID); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	s.logger.Info().Str("room_id", room.ID).Str("host", room.HostName).Msg("room deleted")
	return nil
}

// PostMessage creates a message in a room and adds the author to the room's
// participants. The insert and the membership update are a single repository
// call so a message never exists without its author being a participant.
func (s *ForumService) PostMessage(ctx context.Context, input ports.PostMessageInput) (*domain.Message, error) {
	if input.AuthorID == "" {
		return nil, domain.ErrUnauthorized
	}

	author, err := s.users.FindByID(ctx, input.AuthorID)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.FindByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		RoomID:     room.ID,
		RoomName:   room.Name,
		TopicName:  room.TopicName,
		AuthorID:   author.ID,
		AuthorName: author.Username,
		Body:       input.Body,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.messages.Post(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}

	return created, nil
}

// DeleteMessage removes a message. Only its author may delete it.
func (s *ForumService) DeleteMessage(ctx context.Context, requesterID, messageID string) error {
	if requesterID == "" {
		return domain.ErrUnauthorized
	}

	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if !msg.IsAuthor(requesterID) {
		return domain.ErrForbidden
	}

	if err := s.messages.Delete(ctx, msg.ID); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}

	return nil
}

// UpdateProfile applies profile changes to the requester's own record. The
// username follows the same normalization and uniqueness rules as registration.
func (s *ForumService) UpdateProfile(ctx context.Context, input ports.UpdateProfileInput) (*domain.User, error) {
	if input.RequesterID == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, input.RequesterID)
	if err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(input.Username))
	if username == "" {
		return nil, domain.ErrRegistrationInvalid
	}

	user.Username = username
	user.Email = input.Email
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

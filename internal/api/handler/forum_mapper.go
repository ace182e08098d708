package handler

import (
	"github.com/helpingbuddy/forum-api/internal/core/domain"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func toTopicResponse(t *domain.Topic) topicResponse {
	return topicResponse{ID: t.ID, Name: t.Name}
}

func toRoomResponse(r *domain.Room) roomResponse {
	return roomResponse{
		ID:           r.ID,
		Host:         r.HostName,
		HostID:       r.HostID,
		Topic:        r.TopicName,
		Name:         r.Name,
		Description:  r.Description,
		Participants: len(r.ParticipantIDs),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		RoomID:    m.RoomID,
		Room:      m.RoomName,
		Topic:     m.TopicName,
		Author:    m.AuthorName,
		AuthorID:  m.AuthorID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

func toRoomResponses(rooms []*domain.Room) []roomResponse {
	out := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResponse(r))
	}
	return out
}

func toMessageResponses(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func toTopicResponses(topics []*domain.Topic) []topicResponse {
	out := make([]topicResponse, 0, len(topics))
	for _, t := range topics {
		out = append(out, toTopicResponse(t))
	}
	return out
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

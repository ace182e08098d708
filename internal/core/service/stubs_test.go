package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/helpingbuddy/forum-api/internal/core/domain"
	"github.com/helpingbuddy/forum-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. They mirror the semantics of the Mongo
// implementations (clone-on-return, set-based participants, denormalized
// topic names kept in sync) so service tests exercise the real contracts.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User // by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

type stubSessionStore struct {
	sessions map[string]ports.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]ports.Session)}
}

func (s *stubSessionStore) Put(_ context.Context, sess ports.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*ports.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type stubTopicRepo struct {
	topics []*domain.Topic
	nextID int
}

func newStubTopicRepo() *stubTopicRepo {
	return &stubTopicRepo{}
}

func (r *stubTopicRepo) GetOrCreate(_ context.Context, name string) (*domain.Topic, error) {
	for _, t := range r.topics {
		if t.Name == name {
			clone := *t
			return &clone, nil
		}
	}
	r.nextID++
	t := &domain.Topic{ID: fmt.Sprintf("t%d", r.nextID), Name: name}
	r.topics = append(r.topics, t)
	clone := *t
	return &clone, nil
}

func (r *stubTopicRepo) List(_ context.Context, limit int) ([]*domain.Topic, error) {
	out := make([]*domain.Topic, 0, len(r.topics))
	for _, t := range r.topics {
		if limit > 0 && len(out) >= limit {
			break
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

// stubForumStore bundles room and message storage so the stubs can mirror the
// cross-collection behaviour of the Mongo repositories: participant updates on
// post, topic-name propagation on room update, message cascade on room delete.
type stubForumStore struct {
	rooms    []*domain.Room
	messages []*domain.Message
	nextID   int
}

func newStubForumStore() *stubForumStore {
	return &stubForumStore{}
}

type stubRoomRepo struct{ store *stubForumStore }
type stubMessageRepo struct{ store *stubForumStore }

func icontains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *stubRoomRepo) Create(_ context.Context, room *domain.Room) (*domain.Room, error) {
	r.store.nextID++
	clone := *room
	clone.ID = fmt.Sprintf("r%d", r.store.nextID)
	stored := clone
	r.store.rooms = append(r.store.rooms, &stored)
	return &clone, nil
}

func (r *stubRoomRepo) find(id string) *domain.Room {
	for _, room := range r.store.rooms {
		if room.ID == id {
			return room
		}
	}
	return nil
}

func (r *stubRoomRepo) FindByID(_ context.Context, id string) (*domain.Room, error) {
	room := r.find(id)
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	clone := *room
	return &clone, nil
}

func (r *stubRoomRepo) Search(_ context.Context, query string) ([]*domain.Room, error) {
	var out []*domain.Room
	for _, room := range r.store.rooms {
		if query == "" || icontains(room.TopicName, query) || icontains(room.Name, query) || icontains(room.Description, query) {
			clone := *room
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRoomRepo) FindByHost(_ context.Context, hostID string) ([]*domain.Room, error) {
	var out []*domain.Room
	for _, room := range r.store.rooms {
		if room.HostID == hostID {
			clone := *room
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRoomRepo) Update(_ context.Context, room *domain.Room) error {
	stored := r.find(room.ID)
	if stored == nil {
		return domain.ErrRoomNotFound
	}
	participants := stored.ParticipantIDs
	*stored = *room
	stored.ParticipantIDs = participants
	for _, m := range r.store.messages {
		if m.RoomID == room.ID {
			m.RoomName = room.Name
			m.TopicName = room.TopicName
		}
	}
	return nil
}

func (r *stubRoomRepo) Delete(_ context.Context, id string) error {
	rooms := r.store.rooms[:0]
	for _, room := range r.store.rooms {
		if room.ID != id {
			rooms = append(rooms, room)
		}
	}
	r.store.rooms = rooms

	msgs := r.store.messages[:0]
	for _, m := range r.store.messages {
		if m.RoomID != id {
			msgs = append(msgs, m)
		}
	}
	r.store.messages = msgs
	return nil
}

func (r *stubMessageRepo) Post(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	room := (&stubRoomRepo{store: r.store}).find(msg.RoomID)
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}

	r.store.nextID++
	clone := *msg
	clone.ID = fmt.Sprintf("m%d", r.store.nextID)
	stored := clone
	r.store.messages = append(r.store.messages, &stored)

	present := false
	for _, id := range room.ParticipantIDs {
		if id == msg.AuthorID {
			present = true
			break
		}
	}
	if !present {
		room.ParticipantIDs = append(room.ParticipantIDs, msg.AuthorID)
	}
	return &clone, nil
}

func (r *stubMessageRepo) FindByID(_ context.Context, id string) (*domain.Message, error) {
	for _, m := range r.store.messages {
		if m.ID == id {
			clone := *m
			return &clone, nil
		}
	}
	return nil, domain.ErrMessageNotFound
}

func (r *stubMessageRepo) ListByRoom(_ context.Context, roomID string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.store.messages {
		if m.RoomID == roomID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) ListByAuthor(_ context.Context, authorID string) ([]*domain.Message, error) {
	var out []*domain.Message
	for i := len(r.store.messages) - 1; i >= 0; i-- {
		if r.store.messages[i].AuthorID == authorID {
			clone := *r.store.messages[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) ListAll(_ context.Context) ([]*domain.Message, error) {
	var out []*domain.Message
	for i := len(r.store.messages) - 1; i >= 0; i-- {
		clone := *r.store.messages[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubMessageRepo) SearchByTopic(_ context.Context, query string) ([]*domain.Message, error) {
	var out []*domain.Message
	for i := len(r.store.messages) - 1; i >= 0; i-- {
		if query == "" || icontains(r.store.messages[i].TopicName, query) {
			clone := *r.store.messages[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) Delete(_ context.Context, id string) error {
	msgs := r.store.messages[:0]
	for _, m := range r.store.messages {
		if m.ID != id {
			msgs = append(msgs, m)
		}
	}
	r.store.messages = msgs
	return nil
}

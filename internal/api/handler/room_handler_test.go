package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/helpingbuddy/forum-api/internal/core/domain"
	"github.com/helpingbuddy/forum-api/internal/core/ports"
)

// stubForumService implements ports.ForumService with overridable functions;
// unset operations fail the test when reached.
type stubForumService struct {
	t             *testing.T
	listRoomsFn   func(ctx context.Context, query string) (*ports.HomeResult, error)
	getRoomFn     func(ctx context.Context, roomID string) (*ports.RoomDetail, error)
	createRoomFn  func(ctx context.Context, input ports.CreateRoomInput) (*domain.Room, error)
	updateRoomFn  func(ctx context.Context, input ports.UpdateRoomInput) (*domain.Room, error)
	deleteRoomFn  func(ctx context.Context, requesterID, roomID string) error
	postMessageFn func(ctx context.Context, input ports.PostMessageInput) (*domain.Message, error)
	deleteMsgFn   func(ctx context.Context, requesterID, messageID string) error
}

func (s *stubForumService) ListRooms(ctx context.Context, query string) (*ports.HomeResult, error) {
	if s.listRoomsFn == nil {
		s.t.Fatalf("unexpected ListRooms call")
	}
	return s.listRoomsFn(ctx, query)
}

func (s *stubForumService) GetRoom(ctx context.Context, roomID string) (*ports.RoomDetail, error) {
	if s.getRoomFn == nil {
		s.t.Fatalf("unexpected GetRoom call")
	}
	return s.getRoomFn(ctx, roomID)
}

func (s *stubForumService) GetUserProfile(ctx context.Context, userID string) (*ports.UserProfile, error) {
	s.t.Fatalf("unexpected GetUserProfile call")
	return nil, nil
}

func (s *stubForumService) ListTopics(ctx context.Context) ([]*domain.Topic, error) {
	s.t.Fatalf("unexpected ListTopics call")
	return nil, nil
}

func (s *stubForumService) ListActivity(ctx context.Context) ([]*domain.Message, error) {
	s.t.Fatalf("unexpected ListActivity call")
	return nil, nil
}

func (s *stubForumService) CreateRoom(ctx context.Context, input ports.CreateRoomInput) (*domain.Room, error) {
	if s.createRoomFn == nil {
		s.t.Fatalf("unexpected CreateRoom call")
	}
	return s.createRoomFn(ctx, input)
}

func (s *stubForumService) UpdateRoom(ctx context.Context, input ports.UpdateRoomInput) (*domain.Room, error) {
	if s.updateRoomFn == nil {
		s.t.Fatalf("unexpected UpdateRoom call")
	}
	return s.updateRoomFn(ctx, input)
}

func (s *stubForumService) DeleteRoom(ctx context.Context, requesterID, roomID string) error {
	if s.deleteRoomFn == nil {
		s.t.Fatalf("unexpected DeleteRoom call")
	}
	return s.deleteRoomFn(ctx, requesterID, roomID)
}

func (s *stubForumService) PostMessage(ctx context.Context, input ports.PostMessageInput) (*domain.Message, error) {
	if s.postMessageFn == nil {
		s.t.Fatalf("unexpected PostMessage call")
	}
	return s.postMessageFn(ctx, input)
}

func (s *stubForumService) DeleteMessage(ctx context.Context, requesterID, messageID string) error {
	if s.deleteMsgFn == nil {
		s.t.Fatalf("unexpected DeleteMessage call")
	}
	return s.deleteMsgFn(ctx, requesterID, messageID)
}

func (s *stubForumService) UpdateProfile(ctx context.Context, input ports.UpdateProfileInput) (*domain.User, error) {
	s.t.Fatalf("unexpected UpdateProfile call")
	return nil, nil
}

func TestRoomHandler_List(t *testing.T) {
	e := newEcho()
	stub := &stubForumService{
		t: t,
		listRoomsFn: func(ctx context.Context, query string) (*ports.HomeResult, error) {
			if query != "chess" {
				t.Fatalf("expected query chess, got %q", query)
			}
			return &ports.HomeResult{
				Rooms:     []*domain.Room{{ID: "r1", Name: "Chess Club", TopicName: "Games"}},
				RoomCount: 1,
				Topics:    []*domain.Topic{{ID: "t1", Name: "Games"}},
			}, nil
		},
	}
	h := NewRoomHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/rooms?q=chess", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["room_count"] != float64(1) {
		t.Fatalf("unexpected room_count: %v", resp["room_count"])
	}
}

func TestRoomHandler_Create_UsesContextIdentity(t *testing.T) {
	e := newEcho()
	stub := &stubForumService{
		t: t,
		createRoomFn: func(ctx context.Context, input ports.CreateRoomInput) (*domain.Room, error) {
			if input.HostID != "u1" {
				t.Fatalf("expected host u1, got %q", input.HostID)
			}
			return &domain.Room{ID: "r1", HostID: input.HostID, TopicName: input.TopicName, Name: input.Name}, nil
		},
	}
	h := NewRoomHandler(stub)

	body := strings.NewReader(`{"topic":"Games","name":"Chess Club"}`)
	req := httptest.NewRequest(http.MethodPost, "/rooms", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestRoomHandler_Create_MissingIdentity(t *testing.T) {
	e := newEcho()
	h := NewRoomHandler(&stubForumService{t: t})

	body := strings.NewReader(`{"topic":"Games","name":"Chess Club"}`)
	req := httptest.NewRequest(http.MethodPost, "/rooms", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestRoomHandler_Update_ForbiddenBubbles(t *testing.T) {
	e := newEcho()
	stub := &stubForumService{
		t: t,
		updateRoomFn: func(ctx context.Context, input ports.UpdateRoomInput) (*domain.Room, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewRoomHandler(stub)

	body := strings.NewReader(`{"topic":"Games","name":"Taken Over"}`)
	req := httptest.NewRequest(http.MethodPut, "/rooms/r1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	c.Set("user_id", "u2")

	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRoomHandler_PostMessage(t *testing.T) {
	e := newEcho()
	stub := &stubForumService{
		t: t,
		postMessageFn: func(ctx context.Context, input ports.PostMessageInput) (*domain.Message, error) {
			if input.RoomID != "r1" || input.AuthorID != "u1" || input.Body != "hello" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Message{ID: "m1", RoomID: "r1", AuthorID: "u1", Body: "hello"}, nil
		},
	}
	h := NewRoomHandler(stub)

	body := strings.NewReader(`{"body":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/rooms/r1/messages", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	c.Set("user_id", "u1")

	if err := h.PostMessage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestRoomHandler_PostMessage_EmptyBody(t *testing.T) {
	e := newEcho()
	h := NewRoomHandler(&stubForumService{t: t})

	body := strings.NewReader(`{"body":""}`)
	req := httptest.NewRequest(http.MethodPost, "/rooms/r1/messages", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	c.Set("user_id", "u1")

	if err := h.PostMessage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRoomHandler_DeleteMessage_NotFoundBubbles(t *testing.T) {
	e := newEcho()
	stub := &stubForumService{
		t: t,
		deleteMsgFn: func(ctx context.Context, requesterID, messageID string) error {
			return domain.ErrMessageNotFound
		},
	}
	h := NewRoomHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/messages/m1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("m1")
	c.Set("user_id", "u1")

	if err := h.DeleteMessage(c); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helpingbuddy/forum-api/internal/api/metrics"
	"github.com/helpingbuddy/forum-api/internal/core/domain"
	"github.com/helpingbuddy/forum-api/internal/core/ports"
)

// RoomHandler handles HTTP requests for room browsing and mutation.
type RoomHandler struct {
	service ports.ForumService
}

func NewRoomHandler(service ports.ForumService) *RoomHandler {
	return &RoomHandler{service: service}
}

// List handles GET /rooms?q= — the home view.
//
// @Summary      List and search rooms
// @Tags         rooms
// @Produce      json
// @Param        q  query     string  false  "Case-insensitive match on topic, name, or description"
// @Success      200  {object}  homeResponse
// @Router       /rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	home, err := h.service.ListRooms(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, homeResponse{
		Rooms:     toRoomResponses(home.Rooms),
		RoomCount: home.RoomCount,
		Topics:    toTopicResponses(home.Topics),
		Feed:      toMessageResponses(home.Feed),
	})
}

// Get handles GET /rooms/:id.
//
// @Summary      Get a room with its messages and participants
// @Tags         rooms
// @Produce      json
// @Param        id  path      string  true  "Room id"
// @Success      200  {object}  roomDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /rooms/{id} [get]
func (h *RoomHandler) Get(c echo.Context) error {
	detail, err := h.service.GetRoom(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, roomDetailResponse{
		Room:         toRoomResponse(detail.Room),
		Messages:     toMessageResponses(detail.Messages),
		Participants: toUserResponses(detail.Participants),
	})
}

// Create handles POST /rooms. The acting identity becomes the host.
//
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roomRequest  true  "Room form"
// @Success      201   {object}  roomResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /rooms [post]
func (h *RoomHandler) Create(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	room, err := h.service.CreateRoom(c.Request().Context(), ports.CreateRoomInput{
		HostID:      userID,
		TopicName:   req.Topic,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.RoomsCreatedTotal.WithLabelValues(room.TopicName).Inc()
	return c.JSON(http.StatusCreated, toRoomResponse(room))
}

// Update handles PUT /rooms/:id. Only the host may update a room.
//
// @Summary      Update a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Room id"
// @Param        body  body      roomRequest  true  "Room form"
// @Success      200   {object}  roomResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /rooms/{id} [put]
func (h *RoomHandler) Update(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	room, err := h.service.UpdateRoom(c.Request().Context(), ports.UpdateRoomInput{
		RequesterID: userID,
		RoomID:      c.Param("id"),
		TopicName:   req.Topic,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.ForbiddenTotal.WithLabelValues("room").Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, toRoomResponse(room))
}

// Delete handles DELETE /rooms/:id. Only the host may delete a room; its
// messages go with it.
//
// @Summary      Delete a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Room id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /rooms/{id} [delete]
func (h *RoomHandler) Delete(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteRoom(c.Request().Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.ForbiddenTotal.WithLabelValues("room").Inc()
		}
		return err
	}

	metrics.RoomsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// PostMessage handles POST /rooms/:id/messages. Posting also adds the author
// to the room's participants.
//
// @Summary      Post a message in a room
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Room id"
// @Param        body  body      postMessageRequest  true  "Message body"
// @Success      201   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /rooms/{id}/messages [post]
func (h *RoomHandler) PostMessage(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	msg, err := h.service.PostMessage(c.Request().Context(), ports.PostMessageInput{
		RoomID:   c.Param("id"),
		AuthorID: userID,
		Body:     req.Body,
	})
	if err != nil {
		return err
	}

	metrics.MessagesPostedTotal.Inc()
	return c.JSON(http.StatusCreated, toMessageResponse(msg))
}

// DeleteMessage handles DELETE /messages/:id. Only the author may delete a
// message.
//
// @Summary      Delete a message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Message id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /messages/{id} [delete]
func (h *RoomHandler) DeleteMessage(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteMessage(c.Request().Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.ForbiddenTotal.WithLabelValues("message").Inc()
		}
		return err
	}

	metrics.MessagesDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
